package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/geometry"
	"github.com/df07/go-raycast-tracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	lp := l + 0.3963377774*a + 0.2158037573*b
	mp := l - 0.1055613458*a - 0.0638541728*b
	sp := l - 0.0894841775*a - 1.2914855480*b
	lp, mp, sp = lp*lp*lp, mp*mp*mp, sp*sp*sp

	// LMS to linear RGB
	rgb := core.NewVec3(
		+4.0767416621*lp-3.3077115913*mp+0.2309699292*sp,
		-1.2684380046*lp+2.6097574011*mp-0.3413193965*sp,
		-0.0041960863*lp-0.7034186147*mp+1.7076147010*sp,
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a gridSize x gridSize grid of metallic spheres on a
// grey ground, colored by hue along X and chroma along Z, lit by a glowing sun
func NewSphereGridScene(gridSize int) *Scene {
	if gridSize < 2 {
		gridSize = 2
	}

	s := New("sphere-grid")
	s.CameraConfig = geometry.CameraConfig{
		Position:    core.NewVec3(4.5, 6, 18),
		Direction:   core.NewVec3(0, -5.2, -13.5), // toward the grid center (4.5, 0.8, 4.5)
		Up:          core.NewVec3(0, 1, 0),
		FocalLength: 1.374,
	}
	s.SamplingConfig = SamplingConfig{
		Width:           800,
		Height:          450,
		SamplesPerPixel: 64,
		MaxDepth:        12,
	}
	s.SkyColor = core.NewVec3(0.5, 0.7, 1.0)
	s.Light = DirectionalLight{
		Direction: core.NewVec3(-20, -25, -20),
		Color:     core.NewVec3(1, 0.96, 0.9),
	}

	s.Add("sun", geometry.NewSphere(core.NewVec3(20, 25, 20), 8), material.NewEmissive(core.NewVec3(3, 2.9, 2.6)))
	s.Add("ground", geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))

	// Fit the grid into a 9x9 area regardless of its size
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0

			s.Add(fmt.Sprintf("sphere %d,%d", i, j),
				geometry.NewSphere(core.NewVec3(x, radius, z), radius),
				material.NewMetal(oklchToRGB(lightness, chroma, hue), 0.8, roughness))
		}
	}

	return s
}

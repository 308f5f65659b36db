package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/geometry"
	"github.com/df07/go-raycast-tracer/pkg/material"
)

// NewDefaultScene creates the ground plane, sphere and capsule scene viewed from
// (0,-5,2) along +Y, with ten random spheres drawn from seed and green-grey fog
func NewDefaultScene(seed int64) *Scene {
	s := New("default")
	s.Light = DirectionalLight{
		Direction: core.NewVec3(1, 1, -1),
		Color:     core.NewVec3(0.9, 0.9, 1.0),
	}
	s.SkyColor = core.NewVec3(1, 1, 1)
	s.Fog = Fog{Color: core.NewVec3(0.4, 0.6, 0.4), Distance: 250}
	s.SamplingConfig = SamplingConfig{
		Width:           1280,
		Height:          720,
		SamplesPerPixel: 64,
		MaxDepth:        8,
	}

	s.Add("ground",
		geometry.NewPlane(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)),
		material.NewDiffuse(core.NewVec3(0, 0, 1)))
	s.Add("red sphere",
		geometry.NewSphere(core.NewVec3(-2, 6, 1), 1.25),
		material.NewDiffuse(core.NewVec3(1, 0, 0)))
	s.Add("green capsule",
		geometry.NewCapsule(core.NewVec3(-4, 7, 0), core.NewVec3(4, 7.5, -0.5), 0.5),
		material.NewDiffuse(core.NewVec3(0, 1, 0)))
	s.Add("cyan sphere",
		geometry.NewSphere(core.NewVec3(3, 6, 1), 1),
		material.NewDiffuse(core.NewVec3(0, 1, 1)))
	s.Add("sphere behind camera",
		geometry.NewSphere(core.NewVec3(2, -14, 1.3), 2.4),
		material.NewDiffuse(core.NewVec3(0, 1, 1)))

	random := rand.New(rand.NewSource(seed))
	frand := func(lo, hi float64) float64 {
		return lo + random.Float64()*(hi-lo)
	}
	for i := 0; i < 10; i++ {
		center := core.NewVec3(frand(-30, 30), frand(10, 30), frand(0, 20))
		radius := frand(0.1, 3)
		color := core.NewVec3(frand(0, 1), frand(0, 1), frand(0, 1))
		s.Add(fmt.Sprintf("random sphere %d", i), geometry.NewSphere(center, radius), material.NewDiffuse(color))
	}

	return s
}

// NewSkyScene creates a scene with no primitives, only a sky
func NewSkyScene() *Scene {
	s := New("sky")
	s.SkyColor = core.NewVec3(0.5, 0.7, 1.0)
	s.SamplingConfig = SamplingConfig{
		Width:           320,
		Height:          180,
		SamplesPerPixel: 1,
		MaxDepth:        1,
	}
	return s
}

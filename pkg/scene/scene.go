package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/framebuffer"
	"github.com/df07/go-raycast-tracer/pkg/geometry"
	"github.com/df07/go-raycast-tracer/pkg/material"
)

// Primitive is one shape with its surface attributes
type Primitive struct {
	Name     string
	Shape    geometry.Shape
	Material material.Material
}

// DirectionalLight is a light at infinity shining along Direction
type DirectionalLight struct {
	Direction core.Vec3 // Direction the light travels
	Color     core.Vec3
}

// ToLight returns the unit vector pointing from a surface toward the light
func (l DirectionalLight) ToLight() core.Vec3 {
	return l.Direction.Normalize().Negate()
}

// Fog blends surface albedo toward Color with distance, reaching Color at Distance.
// A zero Distance disables fog.
type Fog struct {
	Color    core.Vec3
	Distance float64
}

// Enabled reports whether fog applies
func (f Fog) Enabled() bool {
	return f.Distance > 0
}

// Apply mixes albedo toward the fog color for a hit at dist
func (f Fog) Apply(albedo core.Vec3, dist float64) core.Vec3 {
	if !f.Enabled() {
		return albedo
	}
	return albedo.Mix(f.Color, core.Clamp(dist, 0, f.Distance)/f.Distance)
}

// SamplingConfig contains the render settings a scene was designed for
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of paths per pixel
	MaxDepth        int // Maximum bounces per path
}

// Scene contains all the elements needed for rendering. It is read-only while a
// render is in progress and may be shared by any number of workers.
type Scene struct {
	Name           string
	Primitives     []Primitive
	Light          DirectionalLight
	Sky            *framebuffer.Buffer // Equirectangular environment, optional
	SkyColor       core.Vec3           // Returned for escaped rays when Sky is nil
	Fog            Fog
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig
}

// New creates an empty scene with a white sky, a default camera and light
func New(name string) *Scene {
	return &Scene{
		Name: name,
		Light: DirectionalLight{
			Direction: core.NewVec3(1, 1, -1),
			Color:     core.NewVec3(1, 1, 1),
		},
		SkyColor:     core.NewVec3(1, 1, 1),
		CameraConfig: geometry.DefaultCameraConfig(),
		SamplingConfig: SamplingConfig{
			Width:           640,
			Height:          360,
			SamplesPerPixel: 16,
			MaxDepth:        8,
		},
	}
}

// Add appends a primitive and returns its index
func (s *Scene) Add(name string, shape geometry.Shape, m material.Material) int {
	s.Primitives = append(s.Primitives, Primitive{Name: name, Shape: shape, Material: m})
	return len(s.Primitives) - 1
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}

// Camera builds a camera from the scene's camera configuration
func (s *Scene) Camera() *geometry.Camera {
	return geometry.NewCamera(s.CameraConfig)
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	var errs []error
	if s.Light.Direction.IsZero() {
		errs = append(errs, errors.New("light direction must be non-zero"))
	}
	if s.CameraConfig.Direction.IsZero() {
		errs = append(errs, errors.New("camera direction must be non-zero"))
	}
	if s.CameraConfig.Direction.Cross(s.CameraConfig.Up).IsZero() {
		errs = append(errs, errors.New("camera up must not be parallel to its direction"))
	}
	if s.Sky != nil && (s.Sky.Width == 0 || s.Sky.Height == 0) {
		errs = append(errs, errors.New("sky image is empty"))
	}
	for i, p := range s.Primitives {
		if p.Shape == nil {
			errs = append(errs, fmt.Errorf("primitive %d (%s): missing shape", i, p.Name))
			continue
		}
		if err := p.Material.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("primitive %d (%s): %w", i, p.Name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}

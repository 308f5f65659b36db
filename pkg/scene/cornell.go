package scene

import (
	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/geometry"
	"github.com/df07/go-raycast-tracer/pkg/material"
)

// NewCornellScene creates a Cornell box built from thin boxes, lit by a glowing
// panel under the ceiling, with a mirror sphere, a glass sphere and a capsule
func NewCornellScene() *Scene {
	s := New("cornell-box")
	s.CameraConfig = geometry.CameraConfig{
		Position:    core.NewVec3(278, 278, -800), // Outside the open front face
		Direction:   core.NewVec3(0, 0, 1),
		Up:          core.NewVec3(0, 1, 0),
		FocalLength: 1.374, // ~40 degree vertical field of view
	}
	s.SamplingConfig = SamplingConfig{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 256,
		MaxDepth:        16,
	}
	s.SkyColor = core.NewVec3(0, 0, 0)
	s.Light = DirectionalLight{
		Direction: core.NewVec3(0.2, -1, 0.3),
		Color:     core.NewVec3(1, 1, 1),
	}

	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))

	boxSize := 555.0
	half := boxSize / 2
	wall := 0.5 // half thickness

	// Looking down +Z with +Y up puts +X on the left of the image.
	s.Add("floor", geometry.NewBox(core.NewVec3(half, -wall, half), core.NewVec3(half+wall, wall, half+wall)), white)
	s.Add("ceiling", geometry.NewBox(core.NewVec3(half, boxSize+wall, half), core.NewVec3(half+wall, wall, half+wall)), white)
	s.Add("back wall", geometry.NewBox(core.NewVec3(half, half, boxSize+wall), core.NewVec3(half+wall, half+wall, wall)), white)
	s.Add("left wall", geometry.NewBox(core.NewVec3(boxSize+wall, half, half), core.NewVec3(wall, half+wall, half+wall)), red)
	s.Add("right wall", geometry.NewBox(core.NewVec3(-wall, half, half), core.NewVec3(wall, half+wall, half+wall)), green)

	lightSize := 130.0
	s.Add("light panel",
		geometry.NewBox(core.NewVec3(half, boxSize-1.5, half), core.NewVec3(lightSize/2, 0.5, lightSize/2)),
		material.NewEmissive(core.NewVec3(4, 4, 4)))

	s.Add("mirror sphere",
		geometry.NewSphere(core.NewVec3(370, 82.5, 169), 82.5),
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1, 0))
	s.Add("glass sphere",
		geometry.NewSphere(core.NewVec3(185, 90, 351), 90),
		material.NewGlass(core.NewVec3(1, 1, 1), 1/1.5))
	s.Add("capsule",
		geometry.NewCapsule(core.NewVec3(420, 40, 420), core.NewVec3(300, 40, 480), 40),
		material.NewMix(core.NewVec3(0.9, 0.6, 0.2), 0.3, 0.4))

	return s
}

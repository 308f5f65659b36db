package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/framebuffer"
	"github.com/df07/go-raycast-tracer/pkg/geometry"
	"github.com/df07/go-raycast-tracer/pkg/material"
)

func TestDirectionalLight_ToLight(t *testing.T) {
	light := DirectionalLight{Direction: core.NewVec3(0, 0, -2)}
	if got := light.ToLight(); got != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected (0,0,1), got %v", got)
	}
}

func TestFog_Apply(t *testing.T) {
	fog := Fog{Color: core.NewVec3(0, 1, 0), Distance: 100}
	albedo := core.NewVec3(1, 0, 0)

	tests := []struct {
		dist     float64
		expected core.Vec3
	}{
		{0, core.NewVec3(1, 0, 0)},
		{50, core.NewVec3(0.5, 0.5, 0)},
		{100, core.NewVec3(0, 1, 0)},
		{1e6, core.NewVec3(0, 1, 0)},
	}
	for _, tt := range tests {
		if got := fog.Apply(albedo, tt.dist); got != tt.expected {
			t.Errorf("Apply(dist=%f) = %v, want %v", tt.dist, got, tt.expected)
		}
	}

	if got := (Fog{}).Apply(albedo, 1e6); got != albedo {
		t.Errorf("Expected disabled fog to leave albedo unchanged, got %v", got)
	}
}

func TestScene_Validate(t *testing.T) {
	s := New("bad")
	s.Light.Direction = core.Vec3{}
	s.Add("glowing", geometry.NewSphere(core.Vec3{}, 1), material.Material{Glow: 2})
	s.Primitives = append(s.Primitives, Primitive{Name: "empty"})

	err := s.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !errors.Is(err, material.ErrInvalidMaterial) {
		t.Errorf("Expected wrapped ErrInvalidMaterial, got %v", err)
	}

	if err := New("ok").Validate(); err != nil {
		t.Errorf("Expected empty scene to validate, got %v", err)
	}
}

func TestNewDefaultScene_Deterministic(t *testing.T) {
	a := NewDefaultScene(7)
	b := NewDefaultScene(7)
	c := NewDefaultScene(8)

	if a.GetPrimitiveCount() != 15 {
		t.Fatalf("Expected 15 primitives, got %d", a.GetPrimitiveCount())
	}
	for i := range a.Primitives {
		if a.Primitives[i] != b.Primitives[i] {
			t.Fatalf("Primitive %d differs between identical seeds", i)
		}
	}

	same := true
	for i := 5; i < len(a.Primitives); i++ {
		if a.Primitives[i] != c.Primitives[i] {
			same = false
		}
	}
	if same {
		t.Error("Expected different seeds to place random spheres differently")
	}
}

func TestSkyAt(t *testing.T) {
	s := New("sky")
	s.SkyColor = core.NewVec3(0.1, 0.2, 0.3)
	if got := s.SkyAt(core.NewVec3(0, 1, 0)); got != s.SkyColor {
		t.Errorf("Expected fallback sky color, got %v", got)
	}

	// 4x2 panorama: top row is the upper hemisphere
	sky := framebuffer.New(4, 2)
	for x := 0; x < 4; x++ {
		sky.Set(x, 0, core.NewVec3(float64(x), 1, 0))
		sky.Set(x, 1, core.NewVec3(float64(x), 2, 0))
	}
	s.Sky = sky

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 0, 1), core.NewVec3(2, 1, 0)},
		{"straight down clamps to last row", core.NewVec3(0, 0, -1), core.NewVec3(2, 2, 0)},
		{"looking -Y wraps to last column", core.NewVec3(0.001, -1, 0.5), core.NewVec3(3, 1, 0)},
		{"looking -X, slightly down", core.NewVec3(-1, 0, -0.2), core.NewVec3(1, 2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.SkyAt(tt.direction); got != tt.expected {
				t.Errorf("SkyAt(%v) = %v, want %v", tt.direction, got, tt.expected)
			}
		})
	}
}

package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/geometry"
	"github.com/df07/go-raycast-tracer/pkg/material"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

func TestPathTracing_SkyOnlyScene(t *testing.T) {
	s := scene.NewSkyScene()
	sampler := core.NewSeededSampler(42)

	for _, maxBounces := range []int{1, 8, 64} {
		pt := NewPathTracingIntegrator(maxBounces)
		for i := 0; i < 200; i++ {
			dir := core.SampleOnUnitSphere(sampler.Get2D())
			color, outcome := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), dir), s, sampler)
			if outcome != OutcomeEscaped {
				t.Fatalf("Expected escaped on the first bounce, got %v", outcome)
			}
			if color != s.SkyColor {
				t.Fatalf("Expected sky color %v, got %v", s.SkyColor, color)
			}
		}
	}
}

func TestPathTracing_GlowTerminates(t *testing.T) {
	s := scene.New("glow")
	s.SkyColor = core.NewVec3(0, 0, 0)
	glowColor := core.NewVec3(0.3, 0.6, 0.9)
	s.Add("lamp", geometry.NewSphere(core.NewVec3(0, 5, 0), 1), material.NewEmissive(glowColor))

	pt := NewPathTracingIntegrator(16)
	sampler := core.NewSeededSampler(1)
	for i := 0; i < 100; i++ {
		color, outcome := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), s, sampler)
		if outcome != OutcomeEmitted {
			t.Fatalf("Expected emitted, got %v", outcome)
		}
		if color != glowColor {
			t.Fatalf("Expected unmodified diffuse color %v, got %v", glowColor, color)
		}
	}
}

func TestPathTracing_BudgetExhausted(t *testing.T) {
	s := scene.New("floor")
	s.Add("floor", geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), material.NewDiffuse(core.NewVec3(1, 1, 1)))

	color, outcome := NewPathTracingIntegrator(1).RayColor(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), s, core.NewSeededSampler(3))
	if outcome != OutcomeExhausted {
		t.Fatalf("Expected exhausted, got %v", outcome)
	}
	if color != (core.Vec3{}) {
		t.Errorf("Expected black, got %v", color)
	}
}

func TestPathTracing_SpecularBounce(t *testing.T) {
	s := scene.New("mirror")
	s.SkyColor = core.NewVec3(0.2, 0.4, 0.6)
	s.Add("floor", geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), material.NewMetal(core.Splat(0.5), 1, 0))

	// Head-on: the Fresnel term is zero, so the bounce is always the attenuated one.
	color, outcome := NewPathTracingIntegrator(4).RayColor(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), s, core.NewSeededSampler(9))
	if outcome != OutcomeEscaped {
		t.Fatalf("Expected escaped after the bounce, got %v", outcome)
	}
	expected := core.NewVec3(0.1, 0.2, 0.3)
	if !vecNear(color, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestPathTracing_TransparentPassThrough(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
	}{
		{"legacy ratio", 0},
		{"glass", 1 / 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.New("glass")
			s.SkyColor = core.NewVec3(0.4, 0.4, 0.4)
			s.Add("ball", geometry.NewSphere(core.NewVec3(0, 5, 0), 1), material.NewGlass(core.NewVec3(1, 0.5, 0.25), tt.ratio))

			// A head-on ray always transmits and leaves undeflected from the far side.
			color, outcome := NewPathTracingIntegrator(4).RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), s, core.NewSeededSampler(5))
			if outcome != OutcomeEscaped {
				t.Fatalf("Expected escaped, got %v", outcome)
			}
			expected := core.NewVec3(0.4, 0.2, 0.1)
			if !vecNear(color, expected, 1e-12) {
				t.Errorf("Expected %v, got %v", expected, color)
			}
		})
	}
}

func TestPathTracing_DeterministicPerSeed(t *testing.T) {
	s := scene.NewDefaultScene(1)
	camera := s.Camera()
	pt := NewPathTracingIntegrator(8)

	render := func(seed int64) []core.Vec3 {
		sampler := core.NewSeededSampler(seed)
		var out []core.Vec3
		for x := 0; x < 64; x++ {
			c, _ := pt.RayColor(camera.GetRay(float64(x*20), 400, 1280, 720), s, sampler)
			out = append(out, c)
		}
		return out
	}

	a, b := render(11), render(11)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Sample %d differs for identical seeds: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestNewPathTracingIntegrator_DefaultBudget(t *testing.T) {
	if pt := NewPathTracingIntegrator(0); pt.MaxBounces != DefaultMaxBounces {
		t.Errorf("Expected default budget %d, got %d", DefaultMaxBounces, pt.MaxBounces)
	}
}

// scriptedSampler returns a fixed sequence of values so a test can force each
// Bernoulli trial and the scatter direction of a path
type scriptedSampler struct {
	values []float64
	next   int
}

func (s *scriptedSampler) Get1D() float64 {
	if s.next >= len(s.values) {
		panic("scriptedSampler: script exhausted")
	}
	v := s.values[s.next]
	s.next++
	return v
}

func (s *scriptedSampler) Get2D() (float64, float64) {
	return s.Get1D(), s.Get1D()
}

func (s *scriptedSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}

// bounceScene has a floor with the given material hit at (1,0,0) by bounceRay, and
// a small lamp centered four units from that point along lampDirection.
func bounceScene(floor material.Material, lampDirection core.Vec3) *scene.Scene {
	s := scene.New("bounce")
	s.SkyColor = core.Vec3{}
	s.Add("floor", geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), floor)
	lampCenter := core.NewVec3(1, 0, 0).Add(lampDirection.Normalize().Multiply(4))
	s.Add("lamp", geometry.NewSphere(lampCenter, 0.5), material.NewEmissive(core.NewVec3(1, 1, 1)))
	return s
}

var bounceRay = core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(1, 0, -1).Normalize())

func TestPathTracing_DiffuseBranch(t *testing.T) {
	floorColor := core.NewVec3(0.8, 0.6, 0.4)

	tests := []struct {
		name      string
		roughness float64
		script    []float64 // u, v of the hemisphere sample
		lamp      core.Vec3 // direction the bounce must take to reach the lamp
	}{
		// Roughness 0 ignores the hemisphere sample and follows the mirror direction
		{"smooth follows reflection", 0, []float64{0.9, 0.3}, core.NewVec3(1, 0, 1)},
		// u=0.25, v=0 samples (0.866, 0, 0.5), already above the floor
		{"rough uses sample", 1, []float64{0.25, 0}, core.NewVec3(math.Sqrt(0.75), 0, 0.5)},
		// u=0.75, v=0 samples (0.866, 0, -0.5), flipped into the normal's hemisphere
		{"rough flips below surface", 1, []float64{0.75, 0}, core.NewVec3(-math.Sqrt(0.75), 0, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			floor := material.NewMix(floorColor, 0, tt.roughness)
			s := bounceScene(floor, tt.lamp)
			sampler := &scriptedSampler{values: tt.script}

			color, outcome := NewPathTracingIntegrator(4).RayColor(bounceRay, s, sampler)
			if outcome != OutcomeEmitted {
				t.Fatalf("Expected the bounce to reach the lamp, got %v", outcome)
			}
			if !vecNear(color, floorColor, 1e-12) {
				t.Errorf("Expected %v, got %v", floorColor, color)
			}
			if sampler.next != len(tt.script) {
				t.Errorf("Expected %d samples drawn, got %d", len(tt.script), sampler.next)
			}
		})
	}
}

func TestPathTracing_SpecularFresnel(t *testing.T) {
	floorColor := core.NewVec3(0.5, 0.5, 0.5)
	specular := 0.5
	// At 45 degrees the Fresnel weight is (1 - cos 45)^2, about 0.086
	tests := []struct {
		name     string
		script   []float64 // specular trial, Fresnel trial
		expected core.Vec3
	}{
		{"fresnel mirror is unattenuated", []float64{0.1, 0.01}, floorColor},
		{"failed fresnel roll scales by specular", []float64{0.1, 0.5}, floorColor.Multiply(specular)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := bounceScene(material.NewMetal(floorColor, specular, 1), core.NewVec3(1, 0, 1))
			sampler := &scriptedSampler{values: tt.script}

			color, outcome := NewPathTracingIntegrator(4).RayColor(bounceRay, s, sampler)
			if outcome != OutcomeEmitted {
				t.Fatalf("Expected the mirror bounce to reach the lamp, got %v", outcome)
			}
			if !vecNear(color, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
			if sampler.next != len(tt.script) {
				t.Errorf("Expected %d samples drawn, got %d", len(tt.script), sampler.next)
			}
		})
	}
}

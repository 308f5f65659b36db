package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-raycast-tracer/pkg/core"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Abs().MaxComponent() <= tolerance
}

func TestToneMap(t *testing.T) {
	got := ToneMap(core.NewVec3(2, 0.5, -1), DefaultGamma)
	expected := core.NewVec3(1, math.Pow(0.5, 0.45), 0)
	if !vecNear(got, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeShaded:    "shaded",
		OutcomeEscaped:   "escaped",
		OutcomeEmitted:   "emitted",
		OutcomeExhausted: "exhausted",
		Outcome(42):      "unknown",
	}
	for outcome, expected := range tests {
		if outcome.String() != expected {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(outcome), outcome.String(), expected)
		}
	}
}

package integrator

import (
	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

// Outcome records how a ray's color was determined
type Outcome int

const (
	// OutcomeShaded means a surface was shaded directly
	OutcomeShaded Outcome = iota
	// OutcomeEscaped means the path left the scene and picked up the sky
	OutcomeEscaped
	// OutcomeEmitted means the path ended on a glowing surface
	OutcomeEmitted
	// OutcomeExhausted means the bounce budget ran out; the path contributes black
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeShaded:
		return "shaded"
	case OutcomeEscaped:
		return "escaped"
	case OutcomeEmitted:
		return "emitted"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use with distinct samplers.
type Integrator interface {
	// RayColor returns the linear color seen along ray and how it ended
	RayColor(ray core.Ray, scn *scene.Scene, sampler core.Sampler) (core.Vec3, Outcome)
}

// DefaultGamma is the tone mapping exponent applied to final pixel colors
const DefaultGamma = 0.45

// ToneMap clamps a linear color to [0,1] and raises it to exponent
func ToneMap(color core.Vec3, exponent float64) core.Vec3 {
	return color.Clamp(0, 1).Pow(exponent)
}

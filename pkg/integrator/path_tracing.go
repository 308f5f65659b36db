package integrator

import (
	"math"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

// DefaultMaxBounces is used when a path tracer is created without a budget
const DefaultMaxBounces = 8

// PathTracingIntegrator follows one random path per call. Each bounce picks a
// single event with Bernoulli trials: glow, refraction, specular or diffuse. The
// path color is the product of the colors picked up along the way.
type PathTracingIntegrator struct {
	MaxBounces int
}

// NewPathTracingIntegrator creates a path tracer; maxBounces <= 0 selects DefaultMaxBounces
func NewPathTracingIntegrator(maxBounces int) *PathTracingIntegrator {
	if maxBounces <= 0 {
		maxBounces = DefaultMaxBounces
	}
	return &PathTracingIntegrator{MaxBounces: maxBounces}
}

// RayColor implements Integrator
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scn *scene.Scene, sampler core.Sampler) (core.Vec3, Outcome) {
	origin := ray.Origin
	direction := ray.Direction.Normalize()
	throughput := core.Splat(1)
	skip := scene.NoHit

	for bounce := 0; bounce < pt.MaxBounces; bounce++ {
		hit := scn.Raycast(origin, direction, skip)
		if !hit.Found() {
			return throughput.MultiplyVec(scn.SkyAt(direction)), OutcomeEscaped
		}

		m := scn.Primitives[hit.Index].Material
		if core.Bernoulli(sampler, m.Glow) {
			return throughput.MultiplyVec(m.Diffuse), OutcomeEmitted
		}

		normal := hit.NearNormal
		skip = hit.Index
		throughput = throughput.MultiplyVec(m.Diffuse)

		// Transmission: head-on rays pass through more often than grazing ones
		if m.Transparent && core.Bernoulli(sampler, -direction.Dot(normal)) {
			origin = hit.FarPoint(origin, direction)
			direction = direction.Refract(normal, m.EffectiveRefractionRatio()).Normalize()
			continue
		}

		origin = hit.Point(origin, direction)
		reflected := direction.Reflect(normal)

		if core.Bernoulli(sampler, m.Specular) {
			fresnel := 1 - math.Abs(normal.Dot(direction))
			if !core.Bernoulli(sampler, fresnel*fresnel) {
				throughput = throughput.Multiply(m.Specular)
			}
			direction = reflected
			continue
		}

		u, v := sampler.Get2D()
		scattered := core.SampleHemisphere(normal, u, v)
		direction = reflected.Mix(scattered, m.Roughness).Normalize()
		if direction.IsZero() {
			direction = normal
		}
	}

	return core.Vec3{}, OutcomeExhausted
}

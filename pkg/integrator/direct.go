package integrator

import (
	"math"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

const (
	ambientFloor     = 0.1
	specularCap      = 0.7
	shadowDiffuse    = 0.6
	shadowSpecular   = 0.04
	specularSquaring = 4 // exponent 2^4 = 16
)

// DirectIntegrator shades the first hit with a wrapped Lambert term, a Phong
// highlight and a soft shadow from the scene's directional light. It never bounces.
type DirectIntegrator struct{}

// NewDirectIntegrator creates a direct shading integrator
func NewDirectIntegrator() *DirectIntegrator {
	return &DirectIntegrator{}
}

// RayColor implements Integrator. The sampler is unused.
func (d *DirectIntegrator) RayColor(ray core.Ray, scn *scene.Scene, sampler core.Sampler) (core.Vec3, Outcome) {
	hit := scn.Raycast(ray.Origin, ray.Direction, scene.NoHit)
	if !hit.Found() {
		return scn.SkyAt(ray.Direction), OutcomeEscaped
	}

	m := scn.Primitives[hit.Index].Material
	albedo := scn.Fog.Apply(m.Diffuse, hit.Near)
	toLight := scn.Light.ToLight()

	diffuse := LambertWrap(toLight, hit.NearNormal)
	specular := PhongSpecular(ray.Direction, hit.NearNormal, toLight)

	if scn.Occluded(hit.Point(ray.Origin, ray.Direction), toLight, hit.Index) {
		diffuse *= shadowDiffuse
		specular *= shadowSpecular
	}

	color := albedo.Multiply(diffuse).Add(scn.Light.Color.Multiply(specular))
	return color.Clamp(0, 1), OutcomeShaded
}

// LambertWrap is the half-Lambert term remapped to [0.1, 0.6]
func LambertWrap(toLight, normal core.Vec3) float64 {
	return core.Clamp(toLight.Dot(normal)*0.5+0.5, 0, 1)*0.5 + ambientFloor
}

// PhongSpecular is max(0, reflect(direction, normal) . toLight)^16, capped at 0.7
func PhongSpecular(direction, normal, toLight core.Vec3) float64 {
	s := math.Max(0, direction.Reflect(normal).Dot(toLight))
	for i := 0; i < specularSquaring; i++ {
		s *= s
	}
	return core.Clamp(s, 0, specularCap)
}

package geometry

import (
	"math"

	"github.com/df07/go-raycast-tracer/pkg/core"
)

// Sphere represents a solid sphere
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// HitSphere reports whether the ray enters the sphere in front of its origin
func HitSphere(ro, rd, center core.Vec3, radius float64) bool {
	oc := ro.Subtract(center)
	b := oc.Dot(rd)
	c := oc.Dot(oc) - radius*radius
	h := b*b - c
	return h >= 0 && -b-math.Sqrt(h) >= 0
}

// SphereDistance returns the entry and exit distances for a unit-direction ray.
// An entry point behind the origin is a miss, even if the exit point is ahead:
// rays starting inside the sphere do not see it.
func SphereDistance(ro, rd, center core.Vec3, radius float64) (Interval, bool) {
	oc := ro.Subtract(center)
	b := oc.Dot(rd)
	c := oc.Dot(oc) - radius*radius
	h := b*b - c
	if h < 0 {
		return Interval{}, false
	}
	h = math.Sqrt(h)
	near := -b - h
	if near < 0 {
		return Interval{}, false
	}
	return Interval{Near: near, Far: -b + h}, true
}

// IntersectSphere is SphereDistance plus outward normals at both points
func IntersectSphere(ro, rd, center core.Vec3, radius float64) (Intersection, bool) {
	iv, ok := SphereDistance(ro, rd, center, radius)
	if !ok {
		return Intersection{}, false
	}
	return Intersection{
		Near:       iv.Near,
		Far:        iv.Far,
		NearNormal: ro.Add(rd.Multiply(iv.Near)).Subtract(center).Normalize(),
		FarNormal:  ro.Add(rd.Multiply(iv.Far)).Subtract(center).Normalize(),
	}, true
}

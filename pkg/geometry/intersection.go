package geometry

import "github.com/df07/go-raycast-tracer/pkg/core"

// Interval holds the two ray parameters where a ray enters and leaves a primitive
type Interval struct {
	Near float64
	Far  float64
}

// Intersection extends Interval with the surface normals at both points
type Intersection struct {
	Near       float64
	Far        float64
	NearNormal core.Vec3
	FarNormal  core.Vec3
}

// Interval drops the normals
func (i Intersection) Interval() Interval {
	return Interval{Near: i.Near, Far: i.Far}
}

// NearestPointOnSegment returns the point of segment [a,b] closest to p
func NearestPointOnSegment(p, a, b core.Vec3) core.Vec3 {
	ba := b.Subtract(a)
	baba := ba.Dot(ba)
	if baba == 0 {
		return a
	}
	h := core.Clamp(p.Subtract(a).Dot(ba)/baba, 0, 1)
	return a.Add(ba.Multiply(h))
}

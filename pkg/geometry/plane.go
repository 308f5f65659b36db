package geometry

import (
	"github.com/df07/go-raycast-tracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) Plane {
	return Plane{
		Point:  point,
		Normal: normal.Normalize(), // Ensure normal is normalized
	}
}

// Offset returns w = dot(point, normal), the plane's signed distance from the origin
func (p Plane) Offset() float64 {
	return p.Point.Dot(p.Normal)
}

// HitPlane reports whether the ray meets the plane dot(x, n) = w in front of its origin
func HitPlane(ro, rd, n core.Vec3, w float64) bool {
	_, ok := PlaneDistance(ro, rd, n, w)
	return ok
}

// PlaneDistance returns the distance along the ray to the plane dot(x, n) = w.
// Near and Far are equal. Rays parallel to the plane and planes behind the origin miss.
func PlaneDistance(ro, rd, n core.Vec3, w float64) (Interval, bool) {
	b := rd.Dot(n)
	if b == 0 {
		return Interval{}, false
	}
	dist := (w - ro.Dot(n)) / b
	if dist < 0 {
		return Interval{}, false
	}
	return Interval{Near: dist, Far: dist}, true
}

// IntersectPlane is PlaneDistance plus a normal flipped to face the incoming ray
func IntersectPlane(ro, rd, n core.Vec3, w float64) (Intersection, bool) {
	iv, ok := PlaneDistance(ro, rd, n, w)
	if !ok {
		return Intersection{}, false
	}
	normal := n
	if rd.Dot(n) > 0 {
		normal = n.Negate()
	}
	return Intersection{Near: iv.Near, Far: iv.Far, NearNormal: normal, FarNormal: normal}, true
}

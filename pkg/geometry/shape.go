package geometry

import (
	"fmt"

	"github.com/df07/go-raycast-tracer/pkg/core"
)

// Shape is one of Plane, Sphere, Capsule or Box. The set is closed: the
// unexported marker keeps other packages from adding variants, so the
// dispatch switches below are exhaustive.
type Shape interface {
	isShape()
}

func (Plane) isShape()   {}
func (Sphere) isShape()  {}
func (Capsule) isShape() {}
func (Box) isShape()     {}

// Kind names the shape variant
func Kind(s Shape) string {
	switch s.(type) {
	case Plane:
		return "plane"
	case Sphere:
		return "sphere"
	case Capsule:
		return "capsule"
	case Box:
		return "box"
	default:
		panic(fmt.Sprintf("geometry: unknown shape %T", s))
	}
}

// Hit reports whether the ray meets the shape
func Hit(s Shape, ro, rd core.Vec3) bool {
	switch s := s.(type) {
	case Plane:
		return HitPlane(ro, rd, s.Normal, s.Offset())
	case Sphere:
		return HitSphere(ro, rd, s.Center, s.Radius)
	case Capsule:
		return HitCapsule(ro, rd, s.A, s.B, s.Radius)
	case Box:
		return HitBox(ro, rd, s.Center, s.Size)
	default:
		panic(fmt.Sprintf("geometry: unknown shape %T", s))
	}
}

// Distance returns the near and far distances along the ray
func Distance(s Shape, ro, rd core.Vec3) (Interval, bool) {
	switch s := s.(type) {
	case Plane:
		return PlaneDistance(ro, rd, s.Normal, s.Offset())
	case Sphere:
		return SphereDistance(ro, rd, s.Center, s.Radius)
	case Capsule:
		return CapsuleDistance(ro, rd, s.A, s.B, s.Radius)
	case Box:
		return BoxDistance(ro, rd, s.Center, s.Size)
	default:
		panic(fmt.Sprintf("geometry: unknown shape %T", s))
	}
}

// Intersect returns distances and normals at both intersection points
func Intersect(s Shape, ro, rd core.Vec3) (Intersection, bool) {
	switch s := s.(type) {
	case Plane:
		return IntersectPlane(ro, rd, s.Normal, s.Offset())
	case Sphere:
		return IntersectSphere(ro, rd, s.Center, s.Radius)
	case Capsule:
		return IntersectCapsule(ro, rd, s.A, s.B, s.Radius)
	case Box:
		return IntersectBox(ro, rd, s.Center, s.Size)
	default:
		panic(fmt.Sprintf("geometry: unknown shape %T", s))
	}
}

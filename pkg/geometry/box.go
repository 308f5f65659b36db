package geometry

import (
	"math"

	"github.com/df07/go-raycast-tracer/pkg/core"
)

// Box represents an axis-aligned box
type Box struct {
	Center core.Vec3 // Center point of the box
	Size   core.Vec3 // Half-extents along each axis
}

// NewBox creates a new axis-aligned box.
// Size represents half-extents (so a size of (1,1,1) creates a 2x2x2 box)
func NewBox(center, size core.Vec3) Box {
	return Box{Center: center, Size: size.Abs()}
}

// hugeInverse stands in for 1/0 when a ray direction component is exactly zero,
// keeping the slab arithmetic finite.
const hugeInverse = 1e30

func safeInverse(d float64) float64 {
	if d == 0 {
		return math.Copysign(hugeInverse, d)
	}
	return 1 / d
}

// slabs returns the per-axis entry (t1) and exit (t2) distances
func slabs(ro, rd, center, size core.Vec3) (t1, t2 core.Vec3) {
	m := core.NewVec3(safeInverse(rd.X), safeInverse(rd.Y), safeInverse(rd.Z))
	n := m.MultiplyVec(ro.Subtract(center))
	k := m.Abs().MultiplyVec(size)
	return n.Negate().Subtract(k), n.Negate().Add(k)
}

// HitBox reports whether the ray meets the box ahead of its origin
func HitBox(ro, rd, center, size core.Vec3) bool {
	_, ok := BoxDistance(ro, rd, center, size)
	return ok
}

// BoxDistance returns the slab-method entry and exit distances.
// Near is negative when the origin is inside the box.
func BoxDistance(ro, rd, center, size core.Vec3) (Interval, bool) {
	t1, t2 := slabs(ro, rd, center, size)
	near := t1.MaxComponent()
	far := t2.MinComponent()
	if near > far || far <= 0 {
		return Interval{}, false
	}
	return Interval{Near: near, Far: far}, true
}

// IntersectBox is BoxDistance plus face normals. The near normal points against
// the ray on the axis that produced the entry distance; the far normal points
// along the ray on the axis that produced the exit distance. From inside the box
// the near normal is the exit face, facing back toward the origin.
func IntersectBox(ro, rd, center, size core.Vec3) (Intersection, bool) {
	t1, t2 := slabs(ro, rd, center, size)
	near := t1.MaxComponent()
	far := t2.MinComponent()
	if near > far || far <= 0 {
		return Intersection{}, false
	}

	sign := rd.Sign()
	farNormal := axisMask(t2, far).MultiplyVec(sign)
	nearNormal := axisMask(t1, near).MultiplyVec(sign).Negate()
	if near <= 0 {
		nearNormal = farNormal.Negate()
	}
	return Intersection{Near: near, Far: far, NearNormal: nearNormal, FarNormal: farNormal}, true
}

// axisMask returns a unit vector on the first axis of t equal to value
func axisMask(t core.Vec3, value float64) core.Vec3 {
	switch value {
	case t.X:
		return core.NewVec3(1, 0, 0)
	case t.Y:
		return core.NewVec3(0, 1, 0)
	default:
		return core.NewVec3(0, 0, 1)
	}
}

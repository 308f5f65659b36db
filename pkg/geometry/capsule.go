package geometry

import (
	"math"

	"github.com/df07/go-raycast-tracer/pkg/core"
)

// Capsule is a cylinder of radius Radius around segment [A,B] with hemispherical caps
type Capsule struct {
	A      core.Vec3
	B      core.Vec3
	Radius float64
}

// NewCapsule creates a new capsule
func NewCapsule(a, b core.Vec3, radius float64) Capsule {
	return Capsule{A: a, B: b, Radius: radius}
}

// parallelEpsilon is the relative threshold below which a ray counts as parallel
// to the capsule axis and the body quadratic is skipped.
const parallelEpsilon = 1e-12

// HitCapsule reports whether the ray enters the capsule in front of its origin
func HitCapsule(ro, rd, pa, pb core.Vec3, radius float64) bool {
	_, ok := CapsuleDistance(ro, rd, pa, pb, radius)
	return ok
}

// CapsuleDistance solves the ray against the capsule body and falls back to the
// end cap sphere nearest the body root when the root lies beyond either end. The
// exit is resolved the same way, so a ray may enter through a cap and leave through
// the body or the other cap.
func CapsuleDistance(ro, rd, pa, pb core.Vec3, radius float64) (Interval, bool) {
	ba := pb.Subtract(pa)
	oa := ro.Subtract(pa)
	baba := ba.Dot(ba)
	bard := ba.Dot(rd)
	baoa := ba.Dot(oa)
	rdoa := rd.Dot(oa)
	oaoa := oa.Dot(oa)

	a := baba - bard*bard
	b := baba*rdoa - baoa*bard
	c := baba*oaoa - baoa*baoa - radius*radius*baba
	h := b*b - a*c
	if h < 0 {
		return Interval{}, false
	}

	var near, far float64
	if a > parallelEpsilon*baba {
		sqrtH := math.Sqrt(h)

		// entry
		t := (-b - sqrtH) / a
		y := baoa + t*bard
		if y > 0 && y < baba {
			if t < 0 {
				return Interval{}, false
			}
			near = t
		} else {
			capCenter := pb
			if y <= 0 {
				capCenter = pa
			}
			iv, ok := SphereDistance(ro, rd, capCenter, radius)
			if !ok {
				return Interval{}, false
			}
			near = iv.Near
		}

		// exit
		t = (-b + sqrtH) / a
		y = baoa + t*bard
		switch {
		case y >= 0 && y <= baba:
			far = t
		case y < 0:
			far = sphereExit(ro, rd, pa, radius)
		default:
			far = sphereExit(ro, rd, pb, radius)
		}
	} else {
		// Parallel to the axis: travelling from A towards B, A's cap comes first.
		entry, exit := pb, pa
		if bard > 0 {
			entry, exit = pa, pb
		}
		iv, ok := SphereDistance(ro, rd, entry, radius)
		if !ok {
			return Interval{}, false
		}
		near = iv.Near
		far = sphereExit(ro, rd, exit, radius)
	}

	return Interval{Near: near, Far: math.Max(near, far)}, true
}

// sphereExit returns the far root of a sphere the ray is known to cross
func sphereExit(ro, rd, center core.Vec3, radius float64) float64 {
	oc := ro.Subtract(center)
	b := oc.Dot(rd)
	c := oc.Dot(oc) - radius*radius
	return -b + math.Sqrt(math.Max(0, b*b-c))
}

// IntersectCapsule is CapsuleDistance plus normals measured from the axis segment
func IntersectCapsule(ro, rd, pa, pb core.Vec3, radius float64) (Intersection, bool) {
	iv, ok := CapsuleDistance(ro, rd, pa, pb, radius)
	if !ok {
		return Intersection{}, false
	}
	return Intersection{
		Near:       iv.Near,
		Far:        iv.Far,
		NearNormal: capsuleNormal(ro.Add(rd.Multiply(iv.Near)), pa, pb, radius),
		FarNormal:  capsuleNormal(ro.Add(rd.Multiply(iv.Far)), pa, pb, radius),
	}, true
}

func capsuleNormal(p, pa, pb core.Vec3, radius float64) core.Vec3 {
	return p.Subtract(NearestPointOnSegment(p, pa, pb)).Divide(radius)
}

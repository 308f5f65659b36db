package scene

import (
	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/geometry"
)

const (
	// NoHit is the primitive index of a ray that hit nothing, and the skip
	// index meaning "exclude nothing"
	NoHit = -1

	// MaxDistance is the initial nearest distance; hits at or beyond it are ignored
	MaxDistance = 9e21
)

// Hit describes the nearest primitive along a ray
type Hit struct {
	Index      int // Primitive index or NoHit
	Near       float64
	Far        float64
	NearNormal core.Vec3
	FarNormal  core.Vec3
}

// Found reports whether anything was hit
func (h Hit) Found() bool {
	return h.Index != NoHit
}

// Point returns the entry point along the ray
func (h Hit) Point(origin, direction core.Vec3) core.Vec3 {
	return origin.Add(direction.Multiply(h.Near))
}

// FarPoint returns the exit point along the ray
func (h Hit) FarPoint(origin, direction core.Vec3) core.Vec3 {
	return origin.Add(direction.Multiply(h.Far))
}

// Raycast returns the nearest primitive hit in front of origin, ignoring the
// primitive at index skip (NoHit excludes nothing). Ties go to the lower index.
func (s *Scene) Raycast(origin, direction core.Vec3, skip int) Hit {
	nearest := Hit{Index: NoHit, Near: MaxDistance, Far: MaxDistance}
	for i := range s.Primitives {
		if i == skip {
			continue
		}
		hit, ok := geometry.Intersect(s.Primitives[i].Shape, origin, direction)
		if !ok || hit.Near < 0 || hit.Near >= nearest.Near {
			continue
		}
		nearest = Hit{
			Index:      i,
			Near:       hit.Near,
			Far:        hit.Far,
			NearNormal: hit.NearNormal,
			FarNormal:  hit.FarNormal,
		}
	}
	return nearest
}

// Occluded reports whether any primitive other than skip lies in front of origin
// along direction. It stops at the first blocker and never computes normals.
func (s *Scene) Occluded(origin, direction core.Vec3, skip int) bool {
	for i := range s.Primitives {
		if i == skip {
			continue
		}
		if iv, ok := geometry.Distance(s.Primitives[i].Shape, origin, direction); ok && iv.Near >= 0 && iv.Near < MaxDistance {
			return true
		}
	}
	return false
}

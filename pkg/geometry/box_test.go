package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raycast-tracer/pkg/core"
)

func TestIntersectBox_AxisRays(t *testing.T) {
	center := core.NewVec3(2, 3, 4)
	size := core.NewVec3(1, 2, 3)

	tests := []struct {
		name       string
		origin     core.Vec3
		direction  core.Vec3
		near, far  float64
		nearNormal core.Vec3
		farNormal  core.Vec3
	}{
		{"+x", core.NewVec3(-8, 3, 4), core.NewVec3(1, 0, 0), 9, 11, core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0)},
		{"-x", core.NewVec3(12, 3, 4), core.NewVec3(-1, 0, 0), 9, 11, core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0)},
		{"+y", core.NewVec3(2, -10, 4), core.NewVec3(0, 1, 0), 11, 15, core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)},
		{"-y", core.NewVec3(2, 10, 4), core.NewVec3(0, -1, 0), 5, 9, core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)},
		{"+z", core.NewVec3(2, 3, -4), core.NewVec3(0, 0, 1), 5, 11, core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1)},
		{"-z", core.NewVec3(2, 3, 10), core.NewVec3(0, 0, -1), 3, 9, core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := IntersectBox(tt.origin, tt.direction, center, size)
			if !ok {
				t.Fatal("Expected hit, got miss")
			}
			if math.Abs(hit.Near-tt.near) > 1e-9 || math.Abs(hit.Far-tt.far) > 1e-9 {
				t.Errorf("Expected near=%f far=%f, got near=%f far=%f", tt.near, tt.far, hit.Near, hit.Far)
			}
			if hit.Near >= hit.Far {
				t.Errorf("Expected near < far, got %f >= %f", hit.Near, hit.Far)
			}
			if !vecNear(hit.NearNormal, tt.nearNormal, 1e-12) {
				t.Errorf("Expected near normal %v, got %v", tt.nearNormal, hit.NearNormal)
			}
			if !vecNear(hit.FarNormal, tt.farNormal, 1e-12) {
				t.Errorf("Expected far normal %v, got %v", tt.farNormal, hit.FarNormal)
			}
		})
	}
}

func TestBoxDistance_Misses(t *testing.T) {
	center := core.NewVec3(0, 0, 0)
	size := core.NewVec3(1, 1, 1)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
	}{
		{"passes beside", core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0)},
		{"box behind origin", core.NewVec3(5, 0, 0), core.NewVec3(1, 0, 0)},
		{"diagonal miss", core.NewVec3(-5, 0, 0), core.NewVec3(1, 1, 0).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := BoxDistance(tt.origin, tt.direction, center, size); ok {
				t.Error("Expected miss, got hit")
			}
			if HitBox(tt.origin, tt.direction, center, size) {
				t.Error("HitBox reported a hit")
			}
		})
	}
}

func TestIntersectBox_ZeroDirectionComponents(t *testing.T) {
	// Two of three direction components are exactly zero; slab arithmetic must stay finite.
	hit, ok := IntersectBox(core.NewVec3(0.5, -0.5, -5), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	values := []float64{hit.Near, hit.Far, hit.NearNormal.X, hit.NearNormal.Y, hit.NearNormal.Z, hit.FarNormal.X, hit.FarNormal.Y, hit.FarNormal.Z}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Expected finite results, got %+v", hit)
		}
	}
	if hit.Near != 4 || hit.Far != 6 {
		t.Errorf("Expected near=4 far=6, got near=%f far=%f", hit.Near, hit.Far)
	}

	// Outside the slab on an axis the ray never moves along: must miss, not NaN.
	if _, ok := IntersectBox(core.NewVec3(3, 0, -5), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)); ok {
		t.Error("Expected miss for ray outside the x slab")
	}
}

func TestIntersectBox_OriginInside(t *testing.T) {
	hit, ok := IntersectBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	if !ok {
		t.Fatal("Expected hit from inside the box")
	}
	if hit.Near != -1 || hit.Far != 1 {
		t.Errorf("Expected near=-1 far=1, got near=%f far=%f", hit.Near, hit.Far)
	}
	if hit.FarNormal != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected far normal (1,0,0), got %v", hit.FarNormal)
	}
	if hit.NearNormal != core.NewVec3(-1, 0, 0) {
		t.Errorf("Expected near normal to face back toward the origin, got %v", hit.NearNormal)
	}
}

package scene

import (
	"math"

	"github.com/df07/go-raycast-tracer/pkg/core"
)

// SkyAt returns the environment color seen along direction. The sky image is an
// equirectangular panorama: azimuth atan2(x, y) spans the width and elevation
// spans the height with +Z at the top row.
func (s *Scene) SkyAt(direction core.Vec3) core.Vec3 {
	if s.Sky == nil {
		return s.SkyColor
	}
	u, v := SkyUV(direction)
	x := clampIndex(int(u*float64(s.Sky.Width)), s.Sky.Width)
	y := clampIndex(int(v*float64(s.Sky.Height)), s.Sky.Height)
	return s.Sky.At(x, y)
}

// SkyUV maps a direction to equirectangular texture coordinates in [0,1]
func SkyUV(direction core.Vec3) (u, v float64) {
	d := direction.Normalize()
	u = math.Atan2(d.X, d.Y)/math.Pi*0.5 + 0.5
	v = math.Asin(core.Clamp(-d.Z, -1, 1))/math.Pi + 0.5
	return u, v
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

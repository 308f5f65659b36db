package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-raycast-tracer/pkg/core"
)

// LegacyRefractionRatio is the fixed relative index the transparency branch used
// before it became a per-material setting. A negative ratio flips the refracted
// direction's tangential part, which is physically meaningless; it is kept only so
// old scenes render the way they always did.
const LegacyRefractionRatio = -1.0

// ErrInvalidMaterial is returned by Validate for out-of-range weights
var ErrInvalidMaterial = errors.New("invalid material")

// Material holds the surface attributes of a primitive.
// Diffuse doubles as the emitted color when the surface glows.
type Material struct {
	Diffuse   core.Vec3 // Base color; channels are conceptually [0,1] but not clamped
	Specular  float64   // Probability of a specular bounce, [0,1]
	Roughness float64   // 0 = perfect mirror direction, 1 = fully diffuse direction
	Glow      float64   // Probability of terminating as an emitter, [0,1]

	Transparent     bool
	RefractionRatio float64 // Relative index of refraction; 0 selects LegacyRefractionRatio
}

// NewDiffuse creates a rough, non-specular surface
func NewDiffuse(color core.Vec3) Material {
	return Material{Diffuse: color, Roughness: 1}
}

// NewMetal creates a specular surface. Roughness is clamped to [0,1].
func NewMetal(color core.Vec3, specular, roughness float64) Material {
	return Material{
		Diffuse:   color,
		Specular:  core.Clamp(specular, 0, 1),
		Roughness: core.Clamp(roughness, 0, 1),
	}
}

// NewMix creates a surface that mixes diffuse and specular bounces
func NewMix(color core.Vec3, specular, roughness float64) Material {
	return Material{Diffuse: color, Specular: specular, Roughness: roughness}
}

// NewEmissive creates a surface that always glows with the given color
func NewEmissive(color core.Vec3) Material {
	return Material{Diffuse: color, Glow: 1}
}

// NewGlass creates a transparent surface with the given relative index of refraction
// (e.g. 1/1.5 for air into glass)
func NewGlass(color core.Vec3, refractionRatio float64) Material {
	return Material{
		Diffuse:         color,
		Transparent:     true,
		RefractionRatio: refractionRatio,
	}
}

// EffectiveRefractionRatio returns the ratio used when refracting through the surface
func (m Material) EffectiveRefractionRatio() float64 {
	if m.RefractionRatio == 0 {
		return LegacyRefractionRatio
	}
	return m.RefractionRatio
}

// IsEmissive reports whether the surface can terminate a path as a light
func (m Material) IsEmissive() bool {
	return m.Glow > 0
}

// Validate checks that probability weights lie in [0,1]
func (m Material) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"specular", m.Specular},
		{"roughness", m.Roughness},
		{"glow", m.Glow},
	}
	for _, w := range weights {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("%w: %s %g outside [0,1]", ErrInvalidMaterial, w.name, w.value)
		}
	}
	return nil
}

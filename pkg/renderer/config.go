package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-raycast-tracer/pkg/integrator"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

// Config contains configuration for a render
type Config struct {
	Width           int     `json:"width"`           // Image width in pixels
	Height          int     `json:"height"`          // Image height in pixels
	Workers         int     `json:"workers"`         // Number of parallel workers (0 = use CPU count)
	TileWidth       int     `json:"tileWidth"`       // Tile width (0 = full image rows)
	TileHeight      int     `json:"tileHeight"`      // Tile height in rows (0 = one row per tile)
	SamplesPerPixel int     `json:"samplesPerPixel"` // Paths per pixel; 1 traces through pixel corners without jitter
	MaxBounces      int     `json:"maxBounces"`      // Bounce budget for the path tracer
	Gamma           float64 `json:"gamma"`           // Tone mapping exponent
	Seed            int64   `json:"seed"`            // Base seed for per-tile random generators
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           640,
		Height:          360,
		Workers:         0,
		TileWidth:       0,
		TileHeight:      1,
		SamplesPerPixel: 1,
		MaxBounces:      integrator.DefaultMaxBounces,
		Gamma:           integrator.DefaultGamma,
		Seed:            42,
	}
}

// ConfigFromScene returns the default configuration with the scene's own
// resolution, sample count and bounce budget
func ConfigFromScene(s *scene.Scene) Config {
	config := DefaultConfig()
	sc := s.SamplingConfig
	if sc.Width > 0 && sc.Height > 0 {
		config.Width = sc.Width
		config.Height = sc.Height
	}
	if sc.SamplesPerPixel > 0 {
		config.SamplesPerPixel = sc.SamplesPerPixel
	}
	if sc.MaxDepth > 0 {
		config.MaxBounces = sc.MaxDepth
	}
	return config
}

// Validate reports every invalid field
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.TileWidth < 0 || c.TileHeight < 0 {
		errs = append(errs, fmt.Errorf("tile size must not be negative, got %dx%d", c.TileWidth, c.TileHeight))
	}
	if c.SamplesPerPixel <= 0 {
		errs = append(errs, fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel))
	}
	if c.MaxBounces <= 0 {
		errs = append(errs, fmt.Errorf("max bounces must be positive, got %d", c.MaxBounces))
	}
	if c.Gamma <= 0 {
		errs = append(errs, fmt.Errorf("gamma must be positive, got %g", c.Gamma))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid render config: %w", err)
	}
	return nil
}

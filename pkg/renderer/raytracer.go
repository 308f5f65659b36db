package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/framebuffer"
	"github.com/df07/go-raycast-tracer/pkg/integrator"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Raytracer renders a scene by spreading tiles across a worker pool
type Raytracer struct {
	scene  *scene.Scene
	config Config
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(scn *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:  scn,
		config: config,
		logger: logger,
	}
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render traces every pixel and returns the tone-mapped image. It blocks until
// every tile has finished. The context is only consulted before work is
// dispatched; a render in progress always runs to completion.
func (rt *Raytracer) Render(ctx context.Context, integ integrator.Integrator) (*framebuffer.Buffer, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render %q not started: %w", rt.scene.Name, err)
	}

	start := time.Now()
	width, height := rt.config.Width, rt.config.Height
	buf := framebuffer.New(width, height)
	tiles := NewTileGrid(width, height, rt.config.TileWidth, rt.config.TileHeight, rt.config.Seed)
	tileRenderer := NewTileRenderer(rt.scene, rt.scene.Camera(), integ, width, height, rt.config.SamplesPerPixel)

	pool := NewWorkerPool(rt.config.Workers, len(tiles))
	pool.Start()
	defer pool.Stop()

	rt.logger.Printf("Rendering %q at %dx%d: %d primitives, %d tiles, %d workers, %d spp\n",
		rt.scene.Name, width, height, rt.scene.GetPrimitiveCount(), len(tiles), pool.GetNumWorkers(), rt.config.SamplesPerPixel)

	// Each task writes its own slot and its own pixels; no locking needed
	tileStats := make([]RenderStats, len(tiles))
	for i, tile := range tiles {
		pool.Submit(func() error {
			tileStats[i] = tileRenderer.RenderTileBounds(tile.Bounds, buf, tile.Sampler)
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render %q: %w", rt.scene.Name, err)
	}

	var stats RenderStats
	for _, ts := range tileStats {
		stats.Merge(ts)
	}
	stats.Workers = pool.GetNumWorkers()
	stats.finalize()

	gamma := rt.config.Gamma
	buf.Map(func(c core.Vec3) core.Vec3 {
		return integrator.ToneMap(c, gamma)
	})
	stats.Duration = time.Since(start)

	rt.logger.Printf("Rendered %q in %v: %d samples (%d shaded, %d escaped, %d emitted, %d exhausted), average luminance %.3f\n",
		rt.scene.Name, stats.Duration, stats.TotalSamples, stats.Shaded, stats.Escaped, stats.Emitted, stats.Exhausted,
		CalculateAverageLuminance(buf))

	return buf, stats, nil
}

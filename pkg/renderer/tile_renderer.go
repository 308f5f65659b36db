package renderer

import (
	"image"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/framebuffer"
	"github.com/df07/go-raycast-tracer/pkg/geometry"
	"github.com/df07/go-raycast-tracer/pkg/integrator"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene           *scene.Scene
	camera          *geometry.Camera
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer for a width x height image
func NewTileRenderer(scn *scene.Scene, camera *geometry.Camera, integ integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:           scn,
		camera:          camera,
		integrator:      integ,
		width:           width,
		height:          height,
		samplesPerPixel: max(1, samplesPerPixel),
	}
}

// RenderTileBounds renders the pixels within bounds into buf. It writes only
// those pixels, so tiles with disjoint bounds may render concurrently.
// Colors are left linear; tone mapping happens once the whole image is done.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, buf *framebuffer.Buffer, sampler core.Sampler) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy(), Tiles: 1}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		row := buf.Row(j)
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			row[i] = tr.samplePixel(i, j, sampler, &stats)
		}
	}

	stats.finalize()
	return stats
}

// samplePixel averages samplesPerPixel paths through pixel (i, j). A single
// sample goes through the pixel corner; more samples are jittered across it.
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler, stats *RenderStats) core.Vec3 {
	var ps PixelStats
	for s := 0; s < tr.samplesPerPixel; s++ {
		x, y := float64(i), float64(j)
		if tr.samplesPerPixel > 1 {
			dx, dy := sampler.Get2D()
			x += dx
			y += dy
		}
		ray := tr.camera.GetRay(x, y, tr.width, tr.height)
		color, outcome := tr.integrator.RayColor(ray, tr.scene, sampler)
		ps.AddSample(color)
		stats.Record(outcome)
	}
	return ps.GetColor()
}

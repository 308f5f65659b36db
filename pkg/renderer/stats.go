package renderer

import (
	"time"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/framebuffer"
	"github.com/df07/go-raycast-tracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	Shaded         int           // Samples shaded directly
	Escaped        int           // Samples that reached the sky
	Emitted        int           // Samples that ended on a glowing surface
	Exhausted      int           // Samples that ran out of bounces
	Tiles          int           // Number of tiles rendered
	Workers        int           // Number of workers used
	Duration       time.Duration // Wall-clock render time
}

// Record counts one sample's outcome
func (s *RenderStats) Record(outcome integrator.Outcome) {
	s.TotalSamples++
	switch outcome {
	case integrator.OutcomeShaded:
		s.Shaded++
	case integrator.OutcomeEscaped:
		s.Escaped++
	case integrator.OutcomeEmitted:
		s.Emitted++
	case integrator.OutcomeExhausted:
		s.Exhausted++
	}
}

// Merge adds the pixel, sample and outcome counts of other
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.Shaded += other.Shaded
	s.Escaped += other.Escaped
	s.Emitted += other.Emitted
	s.Exhausted += other.Exhausted
	s.Tiles += other.Tiles
}

// finalize computes derived statistics
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// PixelStats accumulates samples for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// CalculateAverageLuminance returns the mean luminance of a buffer
func CalculateAverageLuminance(buf *framebuffer.Buffer) float64 {
	if len(buf.Pix) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range buf.Pix {
		total += c.Luminance()
	}
	return total / float64(len(buf.Pix))
}

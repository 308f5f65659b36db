// Package framebuffer provides a row-major buffer of floating point RGB pixels.
package framebuffer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-raycast-tracer/pkg/core"
)

// Buffer is a Width x Height grid of linear RGB pixels stored in one allocation.
// Concurrent writers must own disjoint rows.
type Buffer struct {
	Width  int
	Height int
	Pix    []core.Vec3
}

// New allocates a black buffer
func New(width, height int) *Buffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("framebuffer: negative size %dx%d", width, height))
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]core.Vec3, width*height),
	}
}

// Bounds returns the buffer extent as an image rectangle
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At returns the pixel at (x, y)
func (b *Buffer) At(x, y int) core.Vec3 {
	return b.Pix[y*b.Width+x]
}

// Set writes the pixel at (x, y)
func (b *Buffer) Set(x, y int, c core.Vec3) {
	b.Pix[y*b.Width+x] = c
}

// Row returns row y as a slice aliasing the backing storage
func (b *Buffer) Row(y int) []core.Vec3 {
	start := y * b.Width
	return b.Pix[start : start+b.Width : start+b.Width]
}

// Map replaces every pixel with f(pixel)
func (b *Buffer) Map(f func(core.Vec3) core.Vec3) {
	for i, c := range b.Pix {
		b.Pix[i] = f(c)
	}
}

// ToRGBA quantizes the buffer to 8 bits per channel. Channels are clamped to [0,1]
// and rounded to the nearest level.
func (b *Buffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for y := 0; y < b.Height; y++ {
		for x, c := range b.Row(y) {
			img.SetRGBA(x, y, color.RGBA{
				R: quantize(c.X),
				G: quantize(c.Y),
				B: quantize(c.Z),
				A: 255,
			})
		}
	}
	return img
}

// FromImage converts any image to a buffer with channels in [0,1]
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := New(bounds.Dx(), bounds.Dy())
	for y := 0; y < buf.Height; y++ {
		row := buf.Row(y)
		for x := range row {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			row[x] = core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
		}
	}
	return buf
}

func quantize(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(core.Clamp(v, 0, 1) * 255))
}

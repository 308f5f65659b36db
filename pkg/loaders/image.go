package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP variants the strict codec rejects

	"github.com/df07/go-raycast-tracer/pkg/bmp"
	"github.com/df07/go-raycast-tracer/pkg/framebuffer"
)

// LoadImage loads an image file into a buffer with channels in [0,1].
// Files with a .bmp extension go through the strict 24-bit codec; anything
// else is sniffed and decoded by the registered image decoders.
func LoadImage(filename string) (*framebuffer.Buffer, error) {
	if strings.EqualFold(filepath.Ext(filename), ".bmp") {
		return bmp.Load(filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG/BMP from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return framebuffer.FromImage(img), nil
}

// Package bmp reads and writes 24-bit uncompressed BMP files as framebuffers.
//
// Headers are validated here so malformed files fail with a typed error;
// pixel rows (BGR, bottom-up, 4-byte padded) are transferred by golang.org/x/image/bmp.
package bmp

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	xbmp "golang.org/x/image/bmp"

	"github.com/df07/go-raycast-tracer/pkg/framebuffer"
)

const (
	signature      = 0x4D42 // "BM", little endian
	fileHeaderSize = 14
	infoHeaderSize = 40
	bitsPerPixel   = 24
)

var (
	// ErrInvalidSignature means the file does not start with "BM"
	ErrInvalidSignature = errors.New("bmp: invalid signature")
	// ErrUnsupported means the file is a BMP this package does not read
	ErrUnsupported = errors.New("bmp: unsupported format")
)

// FormatError reports a header field with an unacceptable value
type FormatError struct {
	Field string
	Value int64
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: %s = %d", e.Err, e.Field, e.Value)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Header holds the fields of the file and info headers
type Header struct {
	FileSize     uint32
	DataOffset   uint32
	InfoSize     uint32
	Width        int32
	Height       int32
	Planes       uint16
	BitCount     uint16
	Compression  uint32
	ImageSize    uint32
	XPixelsPerM  int32
	YPixelsPerM  int32
	ColorsUsed   uint32
	ColorsImport uint32
}

// Stride returns the padded byte length of one pixel row
func (h Header) Stride() int {
	return (int(h.Width)*3 + 3) &^ 3
}

// DecodeConfig reads and validates the headers without reading pixel data
func DecodeConfig(r io.Reader) (Header, error) {
	var raw [fileHeaderSize + infoHeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return Header{}, fmt.Errorf("bmp: read header: %w", err)
	}
	return parseHeader(raw[:])
}

func parseHeader(b []byte) (Header, error) {
	le := binary.LittleEndian
	if sig := le.Uint16(b[0:2]); sig != signature {
		return Header{}, &FormatError{Field: "signature", Value: int64(sig), Err: ErrInvalidSignature}
	}
	h := Header{
		FileSize:     le.Uint32(b[2:6]),
		DataOffset:   le.Uint32(b[10:14]),
		InfoSize:     le.Uint32(b[14:18]),
		Width:        int32(le.Uint32(b[18:22])),
		Height:       int32(le.Uint32(b[22:26])),
		Planes:       le.Uint16(b[26:28]),
		BitCount:     le.Uint16(b[28:30]),
		Compression:  le.Uint32(b[30:34]),
		ImageSize:    le.Uint32(b[34:38]),
		XPixelsPerM:  int32(le.Uint32(b[38:42])),
		YPixelsPerM:  int32(le.Uint32(b[42:46])),
		ColorsUsed:   le.Uint32(b[46:50]),
		ColorsImport: le.Uint32(b[50:54]),
	}

	checks := []struct {
		field string
		value int64
		ok    bool
	}{
		{"info header size", int64(h.InfoSize), h.InfoSize == infoHeaderSize},
		{"width", int64(h.Width), h.Width > 0},
		{"height", int64(h.Height), h.Height > 0},
		{"planes", int64(h.Planes), h.Planes == 1},
		{"bit count", int64(h.BitCount), h.BitCount == bitsPerPixel},
		{"compression", int64(h.Compression), h.Compression == 0},
		{"data offset", int64(h.DataOffset), h.DataOffset == fileHeaderSize+infoHeaderSize},
	}
	for _, c := range checks {
		if !c.ok {
			return Header{}, &FormatError{Field: c.field, Value: c.value, Err: ErrUnsupported}
		}
	}
	return h, nil
}

// Decode reads a 24-bit BMP into a framebuffer with channels in [0,1]
func Decode(r io.Reader) (*framebuffer.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bmp: read: %w", err)
	}
	if len(data) < fileHeaderSize+infoHeaderSize {
		return nil, fmt.Errorf("bmp: read header: %w", io.ErrUnexpectedEOF)
	}
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	if need := int64(h.DataOffset) + int64(h.Stride())*int64(h.Height); int64(len(data)) < need {
		return nil, fmt.Errorf("bmp: pixel data truncated, have %d of %d bytes: %w", len(data), need, io.ErrUnexpectedEOF)
	}

	img, err := xbmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("bmp: decode pixels: %w", err)
	}
	return framebuffer.FromImage(img), nil
}

// Encode writes buf as a 24-bit BMP. Channels are clamped to [0,1] and
// quantized to 8 bits.
func Encode(w io.Writer, buf *framebuffer.Buffer) error {
	if buf.Width <= 0 || buf.Height <= 0 {
		return &FormatError{Field: "size", Value: int64(buf.Width) * int64(buf.Height), Err: ErrUnsupported}
	}
	// ToRGBA is fully opaque, which selects the 24-bit layout
	if err := xbmp.Encode(w, buf.ToRGBA()); err != nil {
		return fmt.Errorf("bmp: encode: %w", err)
	}
	return nil
}

// Load decodes the BMP file at path
func Load(path string) (*framebuffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bmp: open %s: %w", path, err)
	}
	defer f.Close()

	buf, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// Save encodes buf to a BMP file at path
func Save(path string, buf *framebuffer.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bmp: create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, buf); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("bmp: write %s: %w", path, err)
	}
	return f.Close()
}

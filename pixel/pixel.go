package pixel

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // register JPEG decoding for Decode
	"image/png"
)

// Channels is the number of interleaved 8-bit channels per pixel (R, G, B, A).
const Channels = 4

// Buffer is a rectangular grid of RGBA pixels stored as a flat row-major byte
// slice, four bytes per pixel. A Buffer is owned by exactly one pipeline stage
// at a time; stages that mutate in place take ownership of their input and
// return a (possibly new) buffer.
type Buffer struct {
	Width  int
	Height int
	// Pix holds the channel-interleaved samples. Invariant:
	// len(Pix) == Width*Height*Channels.
	Pix []byte
}

// New allocates a zeroed buffer of the given dimensions.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pixel: invalid dimensions %dx%d", width, height)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*Channels),
	}, nil
}

// FromImage copies an image into a new buffer, converting to RGBA.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	buf, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	rgba := &image.RGBA{Pix: buf.Pix, Stride: buf.Width * Channels, Rect: image.Rect(0, 0, buf.Width, buf.Height)}
	draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)
	return buf, nil
}

// Decode reads an encoded image (PNG, JPEG, ...) into a buffer.
func Decode(data []byte) (*Buffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pixel: decode image: %w", err)
	}
	return FromImage(img)
}

// Image exposes the buffer as an *image.RGBA sharing the same backing slice.
// Mutating the returned image mutates the buffer.
func (b *Buffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * Channels,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Clone returns a deep copy. Filters use this to read from a frozen snapshot
// while writing to the live buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Offset returns the index of pixel (x, y) in Pix.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * Channels
}

// Valid reports whether the buffer satisfies the length invariant and has
// positive dimensions.
func (b *Buffer) Valid() bool {
	return b != nil && b.Width > 0 && b.Height > 0 && len(b.Pix) == b.Width*b.Height*Channels
}

// ToPNG encodes the buffer as PNG, the interchange format understood by the
// OCR engines.
func (b *Buffer) ToPNG() ([]byte, error) {
	var out bytes.Buffer
	if err := png.Encode(&out, b.Image()); err != nil {
		return nil, fmt.Errorf("pixel: encode png: %w", err)
	}
	return out.Bytes(), nil
}

// Luminance returns the ITU-R BT.601 luma of pixel (x, y) as a value in
// [0, 255].
func (b *Buffer) Luminance(x, y int) float64 {
	off := b.Offset(x, y)
	return 0.299*float64(b.Pix[off]) + 0.587*float64(b.Pix[off+1]) + 0.114*float64(b.Pix[off+2])
}

package filters

import (
	"context"

	"github.com/wudi/scankit/pixel"
)

// Sharpen applies a 3x3 unsharp-mask convolution (center 5, edge neighbors -1,
// corners 0), a discrete Laplacian-style sharpen. Each color channel is
// processed identically and clamped to [0, 255].
type Sharpen struct{}

func (Sharpen) Name() string { return "sharpen" }

// Apply sharpens all interior pixels. The 1-pixel border is copied through
// unchanged; clamping the convolution at the border would also be acceptable
// and produces no material difference on scanned pages.
func (Sharpen) Apply(_ context.Context, buf *pixel.Buffer) error {
	w, h := buf.Width, buf.Height
	if w < 3 || h < 3 {
		return nil
	}
	src := buf.Clone()
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			off := buf.Offset(x, y)
			for c := 0; c < 3; c++ {
				center := float64(src.Pix[src.Offset(x, y)+c])
				up := float64(src.Pix[src.Offset(x, y-1)+c])
				down := float64(src.Pix[src.Offset(x, y+1)+c])
				left := float64(src.Pix[src.Offset(x-1, y)+c])
				right := float64(src.Pix[src.Offset(x+1, y)+c])
				buf.Pix[off+c] = clampByte(5*center - up - down - left - right)
			}
		}
	}
	return nil
}

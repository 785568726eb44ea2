package filters

import (
	"context"
	"math"

	"github.com/wudi/scankit/pixel"
)

// Denoise is a separable Gaussian blur used for light noise suppression. The
// default sigma is deliberately small so text strokes survive.
type Denoise struct {
	Sigma float64
}

// DefaultDenoiseSigma keeps the kernel tight enough that single-pixel scanner
// noise is smoothed without eroding glyph edges.
const DefaultDenoiseSigma = 0.5

func (Denoise) Name() string { return "denoise" }

// Apply convolves the buffer with a normalized 1-D Gaussian kernel, first
// horizontally and then vertically. Samples outside the image are clamped to
// the nearest valid pixel.
func (d Denoise) Apply(_ context.Context, buf *pixel.Buffer) error {
	sigma := d.Sigma
	if sigma <= 0 {
		sigma = DefaultDenoiseSigma
	}
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	src := buf.Clone()
	tmp := buf.Clone()

	// Horizontal pass: src -> tmp.
	convolve1D(src, tmp, kernel, radius, true)
	// Vertical pass: tmp -> buf.
	convolve1D(tmp, buf, kernel, radius, false)
	return nil
}

// gaussianKernel returns the sampled Gaussian density at offsets
// [-radius, radius] with radius = ceil(3*sigma), normalized to sum to 1.
func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func convolve1D(src, dst *pixel.Buffer, kernel []float64, radius int, horizontal bool) {
	w, h := src.Width, src.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc [3]float64
			for k := -radius; k <= radius; k++ {
				sx, sy := x, y
				if horizontal {
					sx = clampInt(x+k, 0, w-1)
				} else {
					sy = clampInt(y+k, 0, h-1)
				}
				off := src.Offset(sx, sy)
				weight := kernel[k+radius]
				acc[0] += weight * float64(src.Pix[off])
				acc[1] += weight * float64(src.Pix[off+1])
				acc[2] += weight * float64(src.Pix[off+2])
			}
			off := dst.Offset(x, y)
			dst.Pix[off] = clampByte(acc[0])
			dst.Pix[off+1] = clampByte(acc[1])
			dst.Pix[off+2] = clampByte(acc[2])
			dst.Pix[off+3] = src.Pix[src.Offset(x, y)+3]
		}
	}
}

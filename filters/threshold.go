package filters

import (
	"context"

	"github.com/wudi/scankit/pixel"
)

// Threshold applies adaptive thresholding: each pixel is compared against the
// mean luminance of its square neighborhood minus a constant offset. Instead
// of producing a hard binary image, pixels are blended toward black or white
// (x0.8 below threshold, x1.2 above), which improves local contrast while
// preserving the grayscale nuance recognition engines rely on.
type Threshold struct{}

const (
	// thresholdRadius is the neighborhood half-width; the window is clamped at
	// image edges, so the effective neighborhood shrinks near borders.
	thresholdRadius = 16
	// thresholdOffset is subtracted from the neighborhood mean to form the
	// local threshold.
	thresholdOffset = 5

	thresholdDarken   = 0.8
	thresholdBrighten = 1.2
)

func (Threshold) Name() string { return "threshold" }

// Apply uses a summed-area table over luminance so the whole pass is
// O(width*height) regardless of neighborhood size.
func (Threshold) Apply(_ context.Context, buf *pixel.Buffer) error {
	w, h := buf.Width, buf.Height
	src := buf.Clone()
	integral := integralLuminance(src)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0 := clampInt(x-thresholdRadius, 0, w-1)
			x1 := clampInt(x+thresholdRadius, 0, w-1)
			y0 := clampInt(y-thresholdRadius, 0, h-1)
			y1 := clampInt(y+thresholdRadius, 0, h-1)
			area := float64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral.sum(x0, y0, x1, y1)
			threshold := sum/area - thresholdOffset

			factor := thresholdDarken
			if src.Luminance(x, y) > threshold {
				factor = thresholdBrighten
			}
			off := buf.Offset(x, y)
			srcOff := src.Offset(x, y)
			for c := 0; c < 3; c++ {
				buf.Pix[off+c] = clampByte(float64(src.Pix[srcOff+c]) * factor)
			}
		}
	}
	return nil
}

// integralImage holds a (w+1)x(h+1) summed-area table.
type integralImage struct {
	w    int
	sums []float64
}

func integralLuminance(buf *pixel.Buffer) *integralImage {
	w, h := buf.Width, buf.Height
	ii := &integralImage{w: w + 1, sums: make([]float64, (w+1)*(h+1))}
	for y := 0; y < h; y++ {
		var rowSum float64
		for x := 0; x < w; x++ {
			rowSum += buf.Luminance(x, y)
			ii.sums[(y+1)*ii.w+x+1] = ii.sums[y*ii.w+x+1] + rowSum
		}
	}
	return ii
}

// sum returns the luminance total over the inclusive rectangle
// [x0,x1]x[y0,y1].
func (ii *integralImage) sum(x0, y0, x1, y1 int) float64 {
	return ii.sums[(y1+1)*ii.w+x1+1] -
		ii.sums[y0*ii.w+x1+1] -
		ii.sums[(y1+1)*ii.w+x0] +
		ii.sums[y0*ii.w+x0]
}

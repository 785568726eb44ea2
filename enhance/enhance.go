// Package enhance conditions a rendered page buffer for recognition. It
// resamples the source to a target resolution and then runs the enabled pixel
// filters in a fixed order: denoise, sharpen, contrast, threshold. The order
// matters: sharpening before contrast equalization and equalization before
// thresholding reproduces the expected output.
package enhance

import (
	"context"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/wudi/scankit/filters"
	"github.com/wudi/scankit/pixel"
)

// Enhance resamples src per opts and applies the enabled filters. The source
// buffer is never mutated; the returned buffer is freshly allocated and owned
// by the caller.
func Enhance(ctx context.Context, src *pixel.Buffer, opts Options) (*pixel.Buffer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	outW, outH := outputSize(src.Width, src.Height, opts)
	dst, err := pixel.New(outW, outH)
	if err != nil {
		return nil, err
	}
	resample(dst, src)

	pipeline := filters.NewPipeline(enabledFilters(opts), filters.Limits{})
	if err := pipeline.Run(ctx, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// outputSize computes min(ceil(dim*scale), maxDim) per axis. When aspect ratio
// preservation is requested and a ceiling binds, the smaller effective scale
// is applied uniformly.
func outputSize(w, h int, opts Options) (int, int) {
	sx := opts.Scale
	sy := opts.Scale
	if float64(w)*sx > float64(opts.MaxWidth) {
		sx = float64(opts.MaxWidth) / float64(w)
	}
	if float64(h)*sy > float64(opts.MaxHeight) {
		sy = float64(opts.MaxHeight) / float64(h)
	}
	if opts.PreserveAspectRatio {
		s := math.Min(sx, sy)
		sx, sy = s, s
	}
	outW := int(math.Ceil(float64(w) * sx))
	outH := int(math.Ceil(float64(h) * sy))
	if outW > opts.MaxWidth {
		outW = opts.MaxWidth
	}
	if outH > opts.MaxHeight {
		outH = opts.MaxHeight
	}
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	return outW, outH
}

func resample(dst, src *pixel.Buffer) {
	if dst.Width == src.Width && dst.Height == src.Height {
		copy(dst.Pix, src.Pix)
		return
	}
	xdraw.BiLinear.Scale(
		dst.Image(), image.Rect(0, 0, dst.Width, dst.Height),
		src.Image(), image.Rect(0, 0, src.Width, src.Height),
		xdraw.Src, nil,
	)
}

func enabledFilters(opts Options) []filters.Filter {
	var fs []filters.Filter
	if opts.Denoise {
		fs = append(fs, filters.Denoise{Sigma: filters.DefaultDenoiseSigma})
	}
	if opts.Sharpen {
		fs = append(fs, filters.Sharpen{})
	}
	if opts.EnhanceContrast {
		fs = append(fs, filters.Contrast{})
	}
	if opts.AdaptiveThreshold {
		fs = append(fs, filters.Threshold{})
	}
	return fs
}

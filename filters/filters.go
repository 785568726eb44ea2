// Package filters implements the pixel-level conditioning transforms applied
// before recognition: denoising blur, sharpening, block-local contrast
// equalization, and adaptive thresholding. Every filter is a pure function of
// its input: it reads from a frozen copy of the buffer and writes to the live
// buffer, so there are no aliasing hazards and no shared state. Filters never
// change buffer dimensions.
package filters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wudi/scankit/pixel"
)

// Filter is a single in-place pixel transform.
type Filter interface {
	Name() string
	Apply(ctx context.Context, buf *pixel.Buffer) error
}

// Limits bounds pipeline resource usage.
type Limits struct {
	// MaxPixels rejects buffers larger than this pixel count; zero means
	// unlimited.
	MaxPixels int
	// MaxFilterTime aborts the pipeline when a single filter exceeds this
	// duration; zero means unlimited.
	MaxFilterTime time.Duration
}

// Pipeline runs a fixed sequence of filters in order.
type Pipeline struct {
	filters []Filter
	limits  Limits
}

// NewPipeline constructs a pipeline with the provided filters and limits.
func NewPipeline(filters []Filter, limits Limits) *Pipeline {
	return &Pipeline{filters: filters, limits: limits}
}

// ErrBufferTooLarge is returned when a buffer exceeds Limits.MaxPixels.
var ErrBufferTooLarge = errors.New("filters: buffer exceeds pixel limit")

// Run applies every filter in sequence, mutating buf in place.
func (p *Pipeline) Run(ctx context.Context, buf *pixel.Buffer) error {
	if !buf.Valid() {
		return fmt.Errorf("filters: invalid buffer %dx%d len=%d", buf.Width, buf.Height, len(buf.Pix))
	}
	if p.limits.MaxPixels > 0 && buf.Width*buf.Height > p.limits.MaxPixels {
		return ErrBufferTooLarge
	}
	for _, f := range p.filters {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		start := time.Now()
		if err := f.Apply(ctx, buf); err != nil {
			return fmt.Errorf("filters: %s: %w", f.Name(), err)
		}
		if p.limits.MaxFilterTime > 0 && time.Since(start) > p.limits.MaxFilterTime {
			return fmt.Errorf("filters: %s exceeded time limit", f.Name())
		}
	}
	return nil
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package filters

import (
	"context"
	"errors"
	"testing"

	"github.com/wudi/scankit/pixel"
)

func uniformBuffer(t *testing.T, w, h int, r, g, b byte) *pixel.Buffer {
	t.Helper()
	buf, err := pixel.New(w, h)
	if err != nil {
		t.Fatalf("pixel.New() error = %v", err)
	}
	for i := 0; i < len(buf.Pix); i += pixel.Channels {
		buf.Pix[i] = r
		buf.Pix[i+1] = g
		buf.Pix[i+2] = b
		buf.Pix[i+3] = 255
	}
	return buf
}

func TestFiltersPreserveDimensions(t *testing.T) {
	for _, f := range []Filter{Denoise{}, Sharpen{}, Contrast{}, Threshold{}} {
		buf := uniformBuffer(t, 37, 23, 120, 90, 60)
		if err := f.Apply(context.Background(), buf); err != nil {
			t.Fatalf("%s: Apply() error = %v", f.Name(), err)
		}
		if buf.Width != 37 || buf.Height != 23 || len(buf.Pix) != 37*23*pixel.Channels {
			t.Fatalf("%s: dimensions changed to %dx%d len=%d", f.Name(), buf.Width, buf.Height, len(buf.Pix))
		}
	}
}

func TestDenoiseUniformImageUnchanged(t *testing.T) {
	buf := uniformBuffer(t, 16, 16, 100, 150, 200)
	if err := (Denoise{}).Apply(context.Background(), buf); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	// A normalized kernel over a constant field reproduces the constant,
	// modulo rounding.
	for i := 0; i < len(buf.Pix); i += pixel.Channels {
		if delta(buf.Pix[i], 100) > 1 || delta(buf.Pix[i+1], 150) > 1 || delta(buf.Pix[i+2], 200) > 1 {
			t.Fatalf("uniform image changed at %d: %v", i, buf.Pix[i:i+4])
		}
	}
}

func TestDenoiseSmoothsSpike(t *testing.T) {
	buf := uniformBuffer(t, 9, 9, 0, 0, 0)
	off := buf.Offset(4, 4)
	buf.Pix[off], buf.Pix[off+1], buf.Pix[off+2] = 255, 255, 255

	if err := (Denoise{}).Apply(context.Background(), buf); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if buf.Pix[buf.Offset(4, 4)] >= 255 {
		t.Fatalf("spike not attenuated: %d", buf.Pix[buf.Offset(4, 4)])
	}
	if buf.Pix[buf.Offset(3, 4)] == 0 {
		t.Fatalf("spike energy not spread to neighbor")
	}
}

func TestSharpenAmplifiesEdge(t *testing.T) {
	buf := uniformBuffer(t, 8, 8, 100, 100, 100)
	// Dark column at x=4 crossing the interior.
	for y := 0; y < 8; y++ {
		off := buf.Offset(4, y)
		buf.Pix[off], buf.Pix[off+1], buf.Pix[off+2] = 50, 50, 50
	}
	if err := (Sharpen{}).Apply(context.Background(), buf); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	// 5*50 - 100 - 100 - 50 - 50 = 0: the dark stroke darkens further.
	if got := buf.Pix[buf.Offset(4, 4)]; got >= 50 {
		t.Fatalf("edge pixel not darkened: %d", got)
	}
	// Border row must be untouched.
	if got := buf.Pix[buf.Offset(4, 0)]; got != 50 {
		t.Fatalf("border pixel changed: %d", got)
	}
}

func TestThresholdPushesPixelsApart(t *testing.T) {
	buf := uniformBuffer(t, 40, 40, 180, 180, 180)
	// A dark block well below the local mean.
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			off := buf.Offset(x, y)
			buf.Pix[off], buf.Pix[off+1], buf.Pix[off+2] = 40, 40, 40
		}
	}
	if err := (Threshold{}).Apply(context.Background(), buf); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := buf.Pix[buf.Offset(15, 15)]; got != 32 {
		t.Fatalf("dark pixel not darkened by 0.8: got %d", got)
	}
	if got := buf.Pix[buf.Offset(35, 35)]; got != 216 {
		t.Fatalf("bright pixel not brightened by 1.2: got %d", got)
	}
}

func TestContrastPreservesBlackAndStretchesMidtones(t *testing.T) {
	buf := uniformBuffer(t, 64, 64, 0, 0, 0)
	// Half the tile at a dim gray; equalization should push it brighter.
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			off := buf.Offset(x, y)
			buf.Pix[off], buf.Pix[off+1], buf.Pix[off+2] = 60, 60, 60
		}
	}
	if err := (Contrast{}).Apply(context.Background(), buf); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := buf.Pix[buf.Offset(0, 40)]; got != 0 {
		t.Fatalf("black pixel changed: %d", got)
	}
	if got := buf.Pix[buf.Offset(0, 10)]; got <= 60 {
		t.Fatalf("midtone not stretched: %d", got)
	}
}

func TestPipelineRespectsPixelLimit(t *testing.T) {
	buf := uniformBuffer(t, 10, 10, 0, 0, 0)
	p := NewPipeline([]Filter{Sharpen{}}, Limits{MaxPixels: 50})
	if err := p.Run(context.Background(), buf); !errors.Is(err, ErrBufferTooLarge) {
		t.Fatalf("expected ErrBufferTooLarge, got %v", err)
	}
}

func TestPipelineHonorsCancellation(t *testing.T) {
	buf := uniformBuffer(t, 10, 10, 0, 0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPipeline([]Filter{Sharpen{}}, Limits{})
	if err := p.Run(ctx, buf); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPipelineRejectsInvalidBuffer(t *testing.T) {
	bad := &pixel.Buffer{Width: 4, Height: 4, Pix: make([]byte, 3)}
	p := NewPipeline(nil, Limits{})
	if err := p.Run(context.Background(), bad); err == nil {
		t.Fatalf("expected error for invalid buffer")
	}
}

func delta(a byte, b int) int {
	d := int(a) - b
	if d < 0 {
		return -d
	}
	return d
}

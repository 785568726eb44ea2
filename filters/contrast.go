package filters

import (
	"context"

	"github.com/wudi/scankit/pixel"
)

// Contrast performs block-local histogram equalization. The image is tiled
// into fixed 64x64 blocks; each block's luminance histogram is equalized
// independently and every pixel's channels are scaled by the ratio of
// equalized to original luminance, which approximately preserves hue. Tiles
// are not blended, so a visible seam at tile boundaries is an accepted
// artifact.
type Contrast struct{}

// contrastTileSize is the side length of an equalization block.
const contrastTileSize = 64

func (Contrast) Name() string { return "contrast" }

func (Contrast) Apply(_ context.Context, buf *pixel.Buffer) error {
	src := buf.Clone()
	for ty := 0; ty < src.Height; ty += contrastTileSize {
		for tx := 0; tx < src.Width; tx += contrastTileSize {
			x1 := clampInt(tx+contrastTileSize, 0, src.Width)
			y1 := clampInt(ty+contrastTileSize, 0, src.Height)
			equalizeTile(src, buf, tx, ty, x1, y1)
		}
	}
	return nil
}

func equalizeTile(src, dst *pixel.Buffer, x0, y0, x1, y1 int) {
	var hist [256]int
	total := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[int(src.Luminance(x, y))]++
			total++
		}
	}
	if total == 0 {
		return
	}

	// Cumulative distribution normalized into [0, 255].
	var equalized [256]float64
	cum := 0
	for v := 0; v < 256; v++ {
		cum += hist[v]
		equalized[v] = float64(cum) / float64(total) * 255
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			lum := src.Luminance(x, y)
			if lum <= 0 {
				continue
			}
			ratio := equalized[int(lum)] / lum
			off := dst.Offset(x, y)
			srcOff := src.Offset(x, y)
			for c := 0; c < 3; c++ {
				dst.Pix[off+c] = clampByte(float64(src.Pix[srcOff+c]) * ratio)
			}
		}
	}
}

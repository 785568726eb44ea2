package enhance

import "math"

const (
	// targetDensity is the DPI-equivalent resolution recognition engines work
	// best at.
	targetDensity = 300
	// assumedDiagonal is the approximate physical page diagonal in inches
	// (US letter). This is a heuristic anchor, not a calibrated measurement.
	assumedDiagonal = 8.5

	minScale = 1.0
	maxScale = 4.0
)

// OptimalScale estimates the resampling factor that brings a page of the given
// pixel dimensions to roughly 300 DPI-equivalent density. The estimate assumes
// an 8.5-inch diagonal, so it is a heuristic rather than a precise DPI
// computation. The result is clamped to [1, 4] and rounded to one decimal.
func OptimalScale(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return minScale
	}
	diagonalPx := math.Sqrt(float64(width)*float64(width) + float64(height)*float64(height))
	currentDensity := diagonalPx / assumedDiagonal
	scale := targetDensity / currentDensity
	if scale < minScale {
		scale = minScale
	}
	if scale > maxScale {
		scale = maxScale
	}
	return math.Round(scale*10) / 10
}

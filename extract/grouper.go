package extract

import (
	"math"
	"sort"
	"strings"
)

// Grouping heuristics. These constants have no deeper geometric derivation;
// they match typical paragraph line spacing and moderate indentation in page
// units and are tunable.
const (
	// lineTolerance is the vertical slack within which two fragments are
	// considered to sit on the same line. The join check allows twice this.
	lineTolerance = 5.0
	// horizontalReach extends a region's horizontal span on each side when
	// testing whether a fragment still belongs to it, capturing ragged
	// paragraph edges without merging unrelated columns.
	horizontalReach = 50.0
	// minRegionHeight filters out degenerate single-fragment slivers.
	minRegionHeight = 20.0
)

// GroupFragments merges positioned text fragments into paragraph-level
// regions using geometric adjacency. Fragments are processed in natural
// reading order for left-to-right text: top of page first (descending Y),
// ties within the line tolerance broken left to right. An empty input yields
// an empty output, signaling the caller to fall back to recognition.
func GroupFragments(fragments []TextFragment) []Region {
	ordered := make([]TextFragment, 0, len(fragments))
	for _, f := range fragments {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		ordered = append(ordered, f)
	}
	if len(ordered) == 0 {
		return nil
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if math.Abs(a.Y-b.Y) <= lineTolerance {
			return a.X < b.X
		}
		return a.Y > b.Y
	})

	var regions []Region
	acc := newAccumulator(ordered[0])
	for _, f := range ordered[1:] {
		if acc.accepts(f) {
			acc.join(f)
			continue
		}
		if r, ok := acc.close(); ok {
			regions = append(regions, r)
		}
		acc = newAccumulator(f)
	}
	if r, ok := acc.close(); ok {
		regions = append(regions, r)
	}
	return regions
}

// accumulator tracks the paragraph region currently being grown during the
// sweep.
type accumulator struct {
	text strings.Builder
	// bounding box union, in page coordinates
	minX, maxX float64
	minY, maxY float64
	// lastY is the Y of the most recently joined fragment, the anchor for the
	// vertical displacement check.
	lastY float64
}

func newAccumulator(f TextFragment) *accumulator {
	a := &accumulator{
		minX:  f.X,
		maxX:  f.X + f.Width,
		minY:  f.Y,
		maxY:  f.Top(),
		lastY: f.Y,
	}
	a.text.WriteString(f.Text)
	return a
}

// accepts reports whether the fragment continues the current region: its
// vertical displacement from the last-seen Y must be within twice the line
// tolerance, and its X must fall inside the region's horizontal span extended
// by the reach on each side.
func (a *accumulator) accepts(f TextFragment) bool {
	if math.Abs(f.Y-a.lastY) > 2*lineTolerance {
		return false
	}
	return f.X >= a.minX-horizontalReach && f.X <= a.maxX+horizontalReach
}

// join concatenates the fragment's text (fragments arrive pre-segmented at
// word boundaries, so no separator is inserted) and grows the bounding box.
func (a *accumulator) join(f TextFragment) {
	a.text.WriteString(f.Text)
	a.minX = math.Min(a.minX, f.X)
	a.maxX = math.Max(a.maxX, f.X+f.Width)
	a.minY = math.Min(a.minY, f.Y)
	a.maxY = math.Max(a.maxY, f.Top())
	a.lastY = f.Y
}

// close emits the accumulated region if it is tall enough. Structured text is
// treated as ground truth, so confidence is fixed at 1.0.
func (a *accumulator) close() (Region, bool) {
	height := a.maxY - a.minY
	if height < minRegionHeight {
		return Region{}, false
	}
	return Region{
		ID:         newRegionID(),
		Kind:       RegionParagraph,
		X:          a.minX,
		Y:          a.minY,
		Width:      a.maxX - a.minX,
		Height:     height,
		Text:       a.text.String(),
		Confidence: 1.0,
	}, true
}

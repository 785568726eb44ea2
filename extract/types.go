// Package extract reconstructs machine-readable text regions from a document
// page, preferring the page's own positioned text and falling back to
// image-based recognition when none exists.
package extract

import (
	"context"

	"github.com/google/uuid"

	"github.com/wudi/scankit/pixel"
)

// Page is an opaque reference to one page of a source document. It is handed
// through to the rendering and structured-text collaborators unchanged; the
// extraction core never inspects it.
type Page any

// TextFragment is a single positioned run of already-digitized text supplied
// by a structured-text source. Coordinates are page units with the origin at
// the bottom-left corner, so a larger Y is higher on the page.
type TextFragment struct {
	Text   string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Top returns the Y coordinate of the fragment's upper edge.
func (f TextFragment) Top() float64 { return f.Y + f.Height }

// RegionKind is the semantic type of an extracted region.
type RegionKind string

const (
	RegionParagraph RegionKind = "paragraph"
	RegionHeading   RegionKind = "heading"
	RegionTable     RegionKind = "table"
	RegionImage     RegionKind = "image"
)

// Region is the unit of output from the extraction core: a bounding box with
// associated text and a confidence score in [0, 1]. Regions are immutable
// once returned; callers derive variants via WithPage rather than mutating in
// place.
type Region struct {
	// ID is an opaque identifier unique per creation.
	ID string
	// PageIndex is the zero-based page the region belongs to.
	PageIndex int
	Kind      RegionKind

	X      float64
	Y      float64
	Width  float64
	Height float64

	// Text is the extracted content; empty when extraction yielded nothing.
	Text string
	// Confidence is 1.0 for structured text, the engine-reported score for
	// recognized text, and 0 when extraction failed.
	Confidence float64
}

// WithPage returns a copy of the region stamped with the given page index.
func (r Region) WithPage(pageIndex int) Region {
	r.PageIndex = pageIndex
	return r
}

func newRegionID() string { return uuid.NewString() }

// Renderer turns a page descriptor into a pixel buffer at the requested
// scale. Rendering is deterministic for identical inputs; failure is signaled
// through the error return, never silently substituted.
type Renderer interface {
	Render(ctx context.Context, page Page, scale float64) (*pixel.Buffer, error)
}

// FragmentSource yields the positioned text a page already carries. An empty
// slice is a legitimate result (image-only page) and is not an error.
type FragmentSource interface {
	Fragments(ctx context.Context, page Page) ([]TextFragment, error)
}

package ocr

import "context"

// ImageFormat identifies the content type of a recognition input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
	ImageFormatTIFF ImageFormat = "image/tiff"
)

// Box describes a rectangular area in pixel coordinates with the origin in
// the upper-left corner of the image.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsEmpty reports whether the box has non-positive dimensions.
func (b Box) IsEmpty() bool { return b.Width <= 0 || b.Height <= 0 }

// Input encapsulates a single image submitted for recognition.
type Input struct {
	// ID is an optional caller-provided identifier that is echoed back in the
	// corresponding Result.
	ID string
	// Image is the encoded image payload in the format specified by Format.
	Image []byte
	// Format declares the image content type (e.g., image/png).
	Format ImageFormat
	// PageIndex links the input back to the zero-based page index the image
	// originated from.
	PageIndex int
	// DPI carries the effective dots-per-inch for the image. Engines use this
	// for scaling and layout heuristics; zero means unknown.
	DPI int
	// Languages is a list of language hints (e.g., "eng", "deu") that engines
	// can use to select trained data.
	Languages []string
	// Config carries the engine tuning parameters selected for this image.
	// The zero value means engine defaults.
	Config Config
}

// TextWord represents a single recognized token.
type TextWord struct {
	Text       string
	Bounds     Box
	Confidence float64
}

// TextLine groups words that share a baseline.
type TextLine struct {
	Text       string
	Bounds     Box
	Words      []TextWord
	Confidence float64
}

// TextBlock aggregates lines that form a logical block (paragraph, heading,
// etc).
type TextBlock struct {
	Text       string
	Bounds     Box
	Lines      []TextLine
	Confidence float64
}

// Result captures recognition output for a single input image.
type Result struct {
	// InputID mirrors the Input.ID that produced this result.
	InputID string
	// PlainText contains the linearized text extracted from the image.
	PlainText string
	// Blocks carries the structured layout with positional metadata.
	Blocks []TextBlock
	// Confidence is the mean word confidence in [0, 1]; zero when the engine
	// reports none.
	Confidence float64
	// Language indicates the dominant language detected, if known.
	Language string
}

// Engine is the simplest recognition provider contract: one image in, one
// result out. A failed recognition is reported through the error return;
// engines never panic on malformed input.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

// BatchEngine handles multiple images in a single call, enabling providers
// that amortize setup costs or remote round-trips.
type BatchEngine interface {
	Engine
	RecognizeBatch(ctx context.Context, inputs []Input) ([]Result, error)
}

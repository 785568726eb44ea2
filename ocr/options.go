package ocr

import (
	"github.com/wudi/scankit/pixel"
)

// InputOption mutates a recognition input before submission.
type InputOption func(*Input)

// WithLanguages sets language hints on the input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithDPI overrides the DPI value on the input.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// WithConfig attaches an engine configuration to the input.
func WithConfig(cfg Config) InputOption {
	return func(in *Input) { in.Config = cfg }
}

// WithID sets the caller-provided identifier echoed back in the result.
func WithID(id string) InputOption {
	return func(in *Input) { in.ID = id }
}

// InputFromBuffer encodes a pixel buffer as PNG and wraps it as a recognition
// input for the given page index.
func InputFromBuffer(buf *pixel.Buffer, pageIndex int, opts ...InputOption) (Input, error) {
	data, err := buf.ToPNG()
	if err != nil {
		return Input{}, err
	}
	in := Input{
		Image:     data,
		Format:    ImageFormatPNG,
		PageIndex: pageIndex,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}

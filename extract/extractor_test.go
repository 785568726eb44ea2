package extract

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/wudi/scankit/ocr"
	"github.com/wudi/scankit/pixel"
)

type fakeRenderer struct {
	width  int
	height int
	err    error
	calls  int
}

func (r *fakeRenderer) Render(_ context.Context, _ Page, _ float64) (*pixel.Buffer, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	buf, err := pixel.New(r.width, r.height)
	if err != nil {
		return nil, err
	}
	for i := range buf.Pix {
		buf.Pix[i] = 255
	}
	return buf, nil
}

type fakeSource struct {
	fragments []TextFragment
	err       error
	calls     int
}

func (s *fakeSource) Fragments(_ context.Context, _ Page) ([]TextFragment, error) {
	s.calls++
	return s.fragments, s.err
}

type fakeEngine struct {
	result ocr.Result
	err    error
	calls  int
	lastIn ocr.Input
}

func (e *fakeEngine) Name() string { return "fake" }

func (e *fakeEngine) Recognize(_ context.Context, in ocr.Input) (ocr.Result, error) {
	e.calls++
	e.lastIn = in
	if e.err != nil {
		return ocr.Result{}, e.err
	}
	return e.result, nil
}

func TestExtractPageStructuredPath(t *testing.T) {
	source := &fakeSource{fragments: []TextFragment{
		{Text: "Invoice #42", X: 50, Y: 1300, Width: 180, Height: 24},
		{Text: "Total: $99.00", X: 50, Y: 1260, Width: 200, Height: 24},
	}}
	renderer := &fakeRenderer{width: 100, height: 100}
	engine := &fakeEngine{}

	e := New(renderer, source, WithEngine(engine))
	regions := e.ExtractPage(context.Background(), "page-descriptor", 4)

	if engine.calls != 0 {
		t.Fatalf("recognizer invoked %d times on the structured path", engine.calls)
	}
	if renderer.calls != 0 {
		t.Fatalf("renderer invoked %d times on the structured path", renderer.calls)
	}
	want := GroupFragments(source.fragments)
	if len(regions) != len(want) {
		t.Fatalf("got %d regions, grouper yields %d", len(regions), len(want))
	}
	for i := range regions {
		if regions[i].Text != want[i].Text || regions[i].Confidence != 1.0 {
			t.Fatalf("region %d diverges from grouper output: %+v", i, regions[i])
		}
		if regions[i].PageIndex != 4 {
			t.Fatalf("region %d not stamped with page index: %d", i, regions[i].PageIndex)
		}
	}
}

func TestExtractPageRecognitionPath(t *testing.T) {
	source := &fakeSource{}
	renderer := &fakeRenderer{width: 80, height: 60}
	engine := &fakeEngine{result: ocr.Result{PlainText: "recognized text", Confidence: 0.9}}

	e := New(renderer, source, WithEngine(engine))
	regions := e.ExtractPage(context.Background(), nil, 0)

	if engine.calls != 1 {
		t.Fatalf("recognizer invoked %d times, want 1", engine.calls)
	}
	if len(regions) != 1 {
		t.Fatalf("expected a single full-page region, got %d", len(regions))
	}
	r := regions[0]
	if r.Text != "recognized text" {
		t.Fatalf("text = %q", r.Text)
	}
	if r.Confidence != 0.9 {
		t.Fatalf("confidence = %v", r.Confidence)
	}
	if r.Width <= 0 || r.Height <= 0 {
		t.Fatalf("region does not cover the page: %+v", r)
	}
	if engine.lastIn.Config.IsZero() {
		t.Fatalf("recognizer called without a selected config")
	}
	if engine.lastIn.Format != ocr.ImageFormatPNG {
		t.Fatalf("unexpected input format %v", engine.lastIn.Format)
	}
}

func TestExtractPageRecognizerFailure(t *testing.T) {
	source := &fakeSource{}
	renderer := &fakeRenderer{width: 80, height: 60}
	engine := &fakeEngine{err: errors.New("tesseract unavailable")}

	e := New(renderer, source, WithEngine(engine))
	regions := e.ExtractPage(context.Background(), nil, 2)

	if len(regions) != 1 {
		t.Fatalf("expected 1 error region, got %d", len(regions))
	}
	r := regions[0]
	if r.Confidence != 0 {
		t.Fatalf("confidence = %v, want 0", r.Confidence)
	}
	if !strings.Contains(r.Text, "extraction failed") {
		t.Fatalf("missing error marker in %q", r.Text)
	}
	if !strings.Contains(r.Text, "tesseract unavailable") {
		t.Fatalf("failure detail not embedded in %q", r.Text)
	}
	if r.PageIndex != 2 {
		t.Fatalf("page index = %d", r.PageIndex)
	}
}

func TestExtractPageRenderFailure(t *testing.T) {
	source := &fakeSource{}
	renderer := &fakeRenderer{err: errors.New("render backend down")}
	engine := &fakeEngine{}

	e := New(renderer, source, WithEngine(engine))
	regions := e.ExtractPage(context.Background(), nil, 0)

	if len(regions) != 1 {
		t.Fatalf("expected 1 error region, got %d", len(regions))
	}
	if regions[0].Confidence != 0 || !strings.Contains(regions[0].Text, "render backend down") {
		t.Fatalf("unexpected failure region %+v", regions[0])
	}
	if engine.calls != 0 {
		t.Fatalf("recognizer invoked after render failure")
	}
}

func TestExtractPageSourceFailureFallsBack(t *testing.T) {
	source := &fakeSource{err: errors.New("no structured text layer")}
	renderer := &fakeRenderer{width: 40, height: 40}
	engine := &fakeEngine{result: ocr.Result{PlainText: "fallback", Confidence: 0.5}}

	e := New(renderer, source, WithEngine(engine))
	regions := e.ExtractPage(context.Background(), nil, 0)

	if engine.calls != 1 {
		t.Fatalf("expected recognition fallback, engine calls = %d", engine.calls)
	}
	if len(regions) != 1 || regions[0].Text != "fallback" {
		t.Fatalf("unexpected regions %+v", regions)
	}
}

func TestExtractDocumentKeysByPage(t *testing.T) {
	source := &fakeSource{fragments: []TextFragment{
		{Text: "content", X: 0, Y: 100, Width: 100, Height: 24},
	}}
	e := New(&fakeRenderer{width: 10, height: 10}, source, WithEngine(&fakeEngine{}))

	out := e.ExtractDocument(context.Background(), []Page{"p0", "p1", "p2"})
	if len(out) != 3 {
		t.Fatalf("expected 3 page entries, got %d", len(out))
	}
	for i := 0; i < 3; i++ {
		regions, ok := out[i]
		if !ok || len(regions) == 0 {
			t.Fatalf("page %d missing regions", i)
		}
		if regions[0].PageIndex != i {
			t.Fatalf("page %d regions stamped %d", i, regions[0].PageIndex)
		}
	}
}

func TestRegionWithPageCopies(t *testing.T) {
	r := Region{ID: "x", PageIndex: 0, Text: "t"}
	r2 := r.WithPage(7)
	if r.PageIndex != 0 {
		t.Fatalf("original mutated")
	}
	if r2.PageIndex != 7 || r2.ID != "x" {
		t.Fatalf("copy wrong: %+v", r2)
	}
}

func TestDetectLayoutStub(t *testing.T) {
	regions := DetectLayout(1000, 1400)
	if len(regions) != 3 {
		t.Fatalf("expected 3 placeholder regions, got %d", len(regions))
	}
	var total float64
	for _, r := range regions {
		if r.Width != 1000 {
			t.Fatalf("band width %v", r.Width)
		}
		total += r.Height
	}
	if math.Abs(total-1400) > 1e-6 {
		t.Fatalf("bands cover %v of 1400", total)
	}
}

func TestFallbackOptionsLargeImage(t *testing.T) {
	opts := fallbackOptions(2000, 1000)
	if opts.Scale != largeImageScale {
		t.Fatalf("large image scale = %v", opts.Scale)
	}
	if opts.Denoise || opts.EnhanceContrast || opts.AdaptiveThreshold {
		t.Fatalf("large image profile should reduce preprocessing: %+v", opts)
	}
	if !opts.Sharpen {
		t.Fatalf("large image profile should keep sharpening")
	}

	small := fallbackOptions(500, 500)
	if small.Scale > maxFallbackScale || small.Scale <= 0 {
		t.Fatalf("small image scale = %v", small.Scale)
	}
	if !small.Denoise || !small.AdaptiveThreshold {
		t.Fatalf("small image profile should keep full preprocessing: %+v", small)
	}
}

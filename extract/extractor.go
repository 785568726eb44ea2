package extract

import (
	"context"
	"fmt"

	"github.com/wudi/scankit/enhance"
	"github.com/wudi/scankit/observability"
	"github.com/wudi/scankit/ocr"
	"github.com/wudi/scankit/pixel"
)

// Recognition-path tuning. Above the megapixel threshold the orchestrator
// favors throughput: a smaller scale and a reduced filter set. Below it,
// quality wins: scale up to 2 with full preprocessing.
const (
	largeImagePixels  = 1_000_000
	largeImageScale   = 1.5
	maxFallbackScale  = 2.0
	failureTextMarker = "[extraction failed: %v]"
)

// Extractor sequences structured-text grouping ahead of image-based
// recognition. It holds no mutable state between invocations, so a single
// Extractor may serve concurrent page extractions.
type Extractor struct {
	renderer Renderer
	source   FragmentSource
	engine   ocr.Engine
	log      observability.Logger
	tracer   observability.Tracer
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger attaches a logger; the default is a no-op.
func WithLogger(log observability.Logger) Option {
	return func(e *Extractor) { e.log = log }
}

// WithTracer attaches a tracer; the default is a no-op.
func WithTracer(tracer observability.Tracer) Option {
	return func(e *Extractor) { e.tracer = tracer }
}

// WithEngine overrides the recognition engine; the default is
// ocr.DefaultEngine() at call time.
func WithEngine(engine ocr.Engine) Option {
	return func(e *Extractor) { e.engine = engine }
}

// New constructs an Extractor over the given collaborators.
func New(renderer Renderer, source FragmentSource, opts ...Option) *Extractor {
	e := &Extractor{
		renderer: renderer,
		source:   source,
		log:      observability.NopLogger{},
		tracer:   observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractPage produces the text regions of one page. Structured text is
// attempted first; when the page carries none, the page is rendered, enhanced
// and recognized. The call never fails structurally: a collaborator failure
// on the recognition path yields a single zero-confidence region whose text
// embeds the failure detail, so batch callers never special-case one bad
// page.
func (e *Extractor) ExtractPage(ctx context.Context, page Page, pageIndex int) []Region {
	ctx, span := e.tracer.StartSpan(ctx, "extract.page")
	defer span.Finish()
	span.SetTag("page", pageIndex)

	if regions := e.extractStructured(ctx, page, pageIndex); len(regions) > 0 {
		e.log.Debug("structured extraction succeeded",
			observability.Int("page", pageIndex),
			observability.Int("regions", len(regions)))
		return regions
	}
	return e.extractByRecognition(ctx, page, pageIndex)
}

// ExtractDocument runs ExtractPage for every page and returns the regions
// keyed by page index. The returned map is owned entirely by the caller; the
// core retains nothing. Pages are processed sequentially; callers wanting
// parallelism may shard pages across goroutines and merge, since the
// Extractor is safe for concurrent use.
func (e *Extractor) ExtractDocument(ctx context.Context, pages []Page) map[int][]Region {
	out := make(map[int][]Region, len(pages))
	for i, page := range pages {
		out[i] = e.ExtractPage(ctx, page, i)
	}
	return out
}

func (e *Extractor) extractStructured(ctx context.Context, page Page, pageIndex int) []Region {
	if e.source == nil {
		return nil
	}
	fragments, err := e.source.Fragments(ctx, page)
	if err != nil {
		// A failing structured-text source is treated like an image-only
		// page: fall through to recognition.
		e.log.Warn("structured-text source failed",
			observability.Int("page", pageIndex),
			observability.Error("error", err))
		return nil
	}
	regions := GroupFragments(fragments)
	for i := range regions {
		regions[i] = regions[i].WithPage(pageIndex)
	}
	return regions
}

func (e *Extractor) extractByRecognition(ctx context.Context, page Page, pageIndex int) []Region {
	buf, err := e.renderer.Render(ctx, page, 1.0)
	if err != nil {
		e.log.Error("page render failed",
			observability.Int("page", pageIndex),
			observability.Error("error", err))
		return []Region{failureRegion(pageIndex, 0, 0, err)}
	}

	opts := fallbackOptions(buf.Width, buf.Height)
	enhanced, err := enhance.Enhance(ctx, buf, opts)
	if err != nil {
		e.log.Error("enhancement failed",
			observability.Int("page", pageIndex),
			observability.Error("error", err))
		return []Region{failureRegion(pageIndex, float64(buf.Width), float64(buf.Height), err)}
	}

	// Whole-page recognition assumes ordinary paragraph text at medium size;
	// callers needing finer control run the selector themselves.
	cfg := ocr.SelectConfig(enhanced.Width, enhanced.Height, ocr.TextSizeMedium, ocr.ContentParagraph)
	result, err := e.recognize(ctx, enhanced, pageIndex, cfg)
	if err != nil {
		e.log.Error("recognition failed",
			observability.Int("page", pageIndex),
			observability.Error("error", err))
		return []Region{failureRegion(pageIndex, float64(enhanced.Width), float64(enhanced.Height), err)}
	}

	e.log.Debug("recognition extraction succeeded",
		observability.Int("page", pageIndex),
		observability.Float64("confidence", result.Confidence))
	return []Region{{
		ID:         newRegionID(),
		PageIndex:  pageIndex,
		Kind:       RegionParagraph,
		Width:      float64(enhanced.Width),
		Height:     float64(enhanced.Height),
		Text:       result.PlainText,
		Confidence: clampConfidence(result.Confidence),
	}}
}

func (e *Extractor) recognize(ctx context.Context, buf *pixel.Buffer, pageIndex int, cfg ocr.Config) (ocr.Result, error) {
	engine := e.engine
	if engine == nil {
		engine = ocr.DefaultEngine()
	}
	input, err := ocr.InputFromBuffer(buf, pageIndex,
		ocr.WithID(fmt.Sprintf("page-%d", pageIndex)),
		ocr.WithConfig(cfg))
	if err != nil {
		return ocr.Result{}, err
	}
	return engine.Recognize(ctx, input)
}

// fallbackOptions picks the whole-page enhancement profile: full
// preprocessing at up to 2x for ordinary pages, a lighter pass at 1.5x above
// one megapixel where full filtering would dominate latency.
func fallbackOptions(width, height int) enhance.Options {
	opts := enhance.DefaultOptions()
	if width*height > largeImagePixels {
		opts.Scale = largeImageScale
		opts.Denoise = false
		opts.EnhanceContrast = false
		opts.AdaptiveThreshold = false
		return opts
	}
	scale := enhance.OptimalScale(width, height)
	if scale > maxFallbackScale {
		scale = maxFallbackScale
	}
	opts.Scale = scale
	return opts
}

// failureRegion synthesizes the zero-confidence full-page region returned
// when a collaborator fails. Width and height are zero when the failure
// happened before the page dimensions were known.
func failureRegion(pageIndex int, width, height float64, err error) Region {
	return Region{
		ID:         newRegionID(),
		PageIndex:  pageIndex,
		Kind:       RegionParagraph,
		Width:      width,
		Height:     height,
		Text:       fmt.Sprintf(failureTextMarker, err),
		Confidence: 0,
	}
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

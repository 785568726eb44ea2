package observability

import (
	"context"
	"errors"
	"testing"
)

func TestFieldConstructors(t *testing.T) {
	if f := String("engine", "tesseract"); f.Key() != "engine" || f.Value() != "tesseract" {
		t.Fatalf("String field: %s=%v", f.Key(), f.Value())
	}
	if f := Int("page", 3); f.Key() != "page" || f.Value() != 3 {
		t.Fatalf("Int field: %s=%v", f.Key(), f.Value())
	}
	if f := Float64("confidence", 0.9); f.Key() != "confidence" || f.Value() != 0.9 {
		t.Fatalf("Float64 field: %s=%v", f.Key(), f.Value())
	}
	err := errors.New("boom")
	if f := Error("error", err); f.Key() != "error" || f.Value() != err {
		t.Fatalf("Error field: %s=%v", f.Key(), f.Value())
	}
}

func TestNopLogger(t *testing.T) {
	var log Logger = NopLogger{}
	log.Debug("ignored")
	log.Info("ignored")
	log.Warn("ignored")
	log.Error("ignored")
	if log.With(String("k", "v")) == nil {
		t.Fatalf("With() returned nil logger")
	}
}

func TestNopTracer(t *testing.T) {
	ctx, span := NopTracer().StartSpan(context.Background(), "test")
	if ctx == nil || span == nil {
		t.Fatalf("nop tracer returned nils")
	}
	span.SetTag("k", "v")
	span.SetError(errors.New("boom"))
	span.Finish()
}

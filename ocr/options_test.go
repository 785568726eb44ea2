package ocr

import (
	"reflect"
	"testing"

	"github.com/wudi/scankit/pixel"
)

func TestInputFromBuffer(t *testing.T) {
	buf, err := pixel.New(4, 4)
	if err != nil {
		t.Fatalf("pixel.New() error = %v", err)
	}
	cfg, _ := NewConfig(map[Param]string{ParamSegmentationMode: "6"})

	in, err := InputFromBuffer(buf, 3,
		WithID("page-3"),
		WithLanguages("eng", "deu"),
		WithDPI(300),
		WithConfig(cfg),
	)
	if err != nil {
		t.Fatalf("InputFromBuffer() error = %v", err)
	}
	if in.Format != ImageFormatPNG {
		t.Fatalf("unexpected format %v", in.Format)
	}
	if in.PageIndex != 3 || in.ID != "page-3" {
		t.Fatalf("unexpected identity: page=%d id=%s", in.PageIndex, in.ID)
	}
	if len(in.Image) == 0 {
		t.Fatalf("expected encoded image data")
	}
	if !reflect.DeepEqual(in.Languages, []string{"eng", "deu"}) {
		t.Fatalf("unexpected languages %v", in.Languages)
	}
	if in.DPI != 300 {
		t.Fatalf("unexpected dpi %d", in.DPI)
	}
	if v, _ := in.Config.Get(ParamSegmentationMode); v != "6" {
		t.Fatalf("config not attached")
	}
}

func TestBoxIsEmpty(t *testing.T) {
	if (Box{Width: 1, Height: 1}).IsEmpty() {
		t.Fatalf("non-empty box reported empty")
	}
	if !(Box{Width: 0, Height: 5}).IsEmpty() {
		t.Fatalf("zero-width box reported non-empty")
	}
}

func TestDefaultEngineIsReplaceable(t *testing.T) {
	orig := DefaultEngine()
	defer SetDefaultEngine(orig)

	stub := &noopEngine{}
	SetDefaultEngine(stub)
	if DefaultEngine() != Engine(stub) {
		t.Fatalf("default engine not replaced")
	}
}

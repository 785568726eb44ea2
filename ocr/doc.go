// Package ocr defines the abstraction layer for plugging recognition engines
// (for example, Tesseract or cloud services) into the page extraction
// pipeline, along with the adaptive configuration selector that tunes an
// engine to the image at hand. The interfaces are intentionally small and
// transport-agnostic so engines can be backed by native libraries or remote
// APIs without leaking provider-specific concerns into callers.
package ocr

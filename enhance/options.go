package enhance

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Options configures one enhancement run. A value is immutable once handed to
// Enhance; there is no ambient or global enhancement state.
type Options struct {
	// Scale is the resampling factor applied before filtering. Must be > 0;
	// typical values are 1-4.
	Scale float64 `yaml:"scale"`

	Denoise           bool `yaml:"denoise"`
	Sharpen           bool `yaml:"sharpen"`
	EnhanceContrast   bool `yaml:"enhance_contrast"`
	AdaptiveThreshold bool `yaml:"adaptive_threshold"`

	// MaxWidth and MaxHeight cap the output dimensions regardless of Scale.
	// Zero selects the package defaults.
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`

	// PreserveAspectRatio forces a uniform effective scale on both axes when
	// the size ceiling would otherwise distort the image.
	PreserveAspectRatio bool `yaml:"preserve_aspect_ratio"`
}

// Default output ceilings. Large enough for a letter page at 4x of 300 DPI
// equivalents, small enough to keep filter passes bounded.
const (
	DefaultMaxWidth  = 8192
	DefaultMaxHeight = 8192
)

// DefaultOptions returns the full-quality profile used for ordinary scans.
func DefaultOptions() Options {
	return Options{
		Scale:               2,
		Denoise:             true,
		Sharpen:             true,
		EnhanceContrast:     true,
		AdaptiveThreshold:   true,
		MaxWidth:            DefaultMaxWidth,
		MaxHeight:           DefaultMaxHeight,
		PreserveAspectRatio: true,
	}
}

func (o Options) validate() error {
	if o.Scale <= 0 {
		return fmt.Errorf("enhance: scale must be positive, got %g", o.Scale)
	}
	return nil
}

// withDefaults fills in zero ceilings.
func (o Options) withDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = DefaultMaxHeight
	}
	return o
}

// LoadPresets parses a YAML mapping of preset name to Options. Presets with a
// non-positive scale are rejected.
func LoadPresets(data []byte) (map[string]Options, error) {
	presets := make(map[string]Options)
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("enhance: parse presets: %w", err)
	}
	for name, opts := range presets {
		if err := opts.validate(); err != nil {
			return nil, fmt.Errorf("enhance: preset %q: %w", name, err)
		}
		presets[name] = opts.withDefaults()
	}
	return presets, nil
}

// DefaultPresets returns the built-in named profiles.
func DefaultPresets() map[string]Options {
	scan := DefaultOptions()

	fast := DefaultOptions()
	fast.Scale = 1.5
	fast.Denoise = false
	fast.EnhanceContrast = false
	fast.AdaptiveThreshold = false

	archival := DefaultOptions()
	archival.Scale = 3

	return map[string]Options{
		"scan":     scan,
		"fast":     fast,
		"archival": archival,
	}
}

package ocr

import (
	"fmt"
	"sort"
	"strconv"
)

// Param names a recognition-engine tuning knob. The set of parameters is
// closed: Config construction rejects anything outside the names below, so a
// typo fails at build time instead of being silently ignored by the engine.
type Param string

const (
	// ParamSegmentationMode selects the page segmentation strategy.
	ParamSegmentationMode Param = "tessedit_pageseg_mode"
	// ParamEngineMode selects the recognition engine variant.
	ParamEngineMode Param = "tessedit_ocr_engine_mode"
	// ParamMinCharHeight is the minimum x-height (in pixels) a character run
	// must have to be considered text.
	ParamMinCharHeight Param = "textord_min_xheight"
	// ParamNoiseSizeFraction controls how large a blob may be, relative to
	// line size, before it is kept rather than discarded as noise.
	ParamNoiseSizeFraction Param = "textord_noise_sizefraction"
	// ParamHeavyNoiseReduction toggles the aggressive noise removal pass.
	ParamHeavyNoiseReduction Param = "textord_heavy_nr"
	// ParamLoadSystemDictionary toggles loading of the system word list.
	ParamLoadSystemDictionary Param = "load_system_dawg"
	// ParamLoadFrequentWords toggles loading of the frequent-word list.
	ParamLoadFrequentWords Param = "load_freq_dawg"
	// ParamAdaptiveMatcher toggles the adaptive classifier.
	ParamAdaptiveMatcher Param = "classify_enable_adaptive_matcher"
	// ParamAdaptiveThreshold sets the match threshold for accepting adaptive
	// classifier results.
	ParamAdaptiveThreshold Param = "classify_adapt_proto_threshold"
)

var knownParams = map[Param]bool{
	ParamSegmentationMode:     true,
	ParamEngineMode:           true,
	ParamMinCharHeight:        true,
	ParamNoiseSizeFraction:    true,
	ParamHeavyNoiseReduction:  true,
	ParamLoadSystemDictionary: true,
	ParamLoadFrequentWords:    true,
	ParamAdaptiveMatcher:      true,
	ParamAdaptiveThreshold:    true,
}

// Config is an immutable set of engine parameters. The zero value is valid
// and means "engine defaults".
type Config struct {
	params map[Param]string
}

// NewConfig validates the given parameters against the known set and returns
// an immutable Config. The input map is copied; later mutation of it does not
// affect the Config.
func NewConfig(values map[Param]string) (Config, error) {
	params := make(map[Param]string, len(values))
	for k, v := range values {
		if !knownParams[k] {
			return Config{}, fmt.Errorf("ocr: unknown config parameter %q", k)
		}
		params[k] = v
	}
	return Config{params: params}, nil
}

// IsZero reports whether the config carries no parameters.
func (c Config) IsZero() bool { return len(c.params) == 0 }

// Get returns the value for a parameter and whether it is set.
func (c Config) Get(p Param) (string, bool) {
	v, ok := c.params[p]
	return v, ok
}

// Float returns a parameter parsed as a float, or def when unset or
// unparsable.
func (c Config) Float(p Param, def float64) float64 {
	v, ok := c.params[p]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Vars renders the config as the plain string map engines consume. The
// returned map is a copy.
func (c Config) Vars() map[string]string {
	out := make(map[string]string, len(c.params))
	for k, v := range c.params {
		out[string(k)] = v
	}
	return out
}

// Params returns the set parameter names in stable order.
func (c Config) Params() []Param {
	out := make([]Param, 0, len(c.params))
	for k := range c.params {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

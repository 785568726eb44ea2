package ocr

import "strconv"

// TextSize classifies the dominant glyph size expected on the page.
type TextSize string

const (
	TextSizeSmall  TextSize = "small"
	TextSizeMedium TextSize = "medium"
	TextSizeLarge  TextSize = "large"
)

// ContentKind classifies the expected page layout.
type ContentKind string

const (
	ContentParagraph   ContentKind = "paragraph"
	ContentSingleLine  ContentKind = "single_line"
	ContentMultiColumn ContentKind = "multi_column"
	ContentHandwriting ContentKind = "handwriting"
)

// Resolution bands for the pixel-count override.
const (
	highResolutionPixels = 2_000_000
	lowResolutionPixels  = 500_000
)

// Base profiles. Pure data, never mutated after definition; the selector
// copies before applying overrides.
var (
	profileGeneral = map[Param]string{
		ParamSegmentationMode:     "3",
		ParamEngineMode:           "3",
		ParamMinCharHeight:        "10",
		ParamNoiseSizeFraction:    "10",
		ParamHeavyNoiseReduction:  "1",
		ParamLoadSystemDictionary: "1",
		ParamLoadFrequentWords:    "1",
		ParamAdaptiveMatcher:      "1",
		ParamAdaptiveThreshold:    "230",
	}
	profileSmallText = map[Param]string{
		ParamSegmentationMode:     "6",
		ParamEngineMode:           "3",
		ParamMinCharHeight:        "6",
		ParamNoiseSizeFraction:    "6",
		ParamHeavyNoiseReduction:  "0",
		ParamLoadSystemDictionary: "1",
		ParamLoadFrequentWords:    "1",
		ParamAdaptiveMatcher:      "1",
		ParamAdaptiveThreshold:    "230",
	}
	profileSingleLine = map[Param]string{
		ParamSegmentationMode:     "7",
		ParamEngineMode:           "3",
		ParamMinCharHeight:        "8",
		ParamNoiseSizeFraction:    "8",
		ParamHeavyNoiseReduction:  "0",
		ParamLoadSystemDictionary: "1",
		ParamLoadFrequentWords:    "0",
		ParamAdaptiveMatcher:      "1",
		ParamAdaptiveThreshold:    "230",
	}
	profileMultiColumn = map[Param]string{
		ParamSegmentationMode:     "1",
		ParamEngineMode:           "3",
		ParamMinCharHeight:        "10",
		ParamNoiseSizeFraction:    "10",
		ParamHeavyNoiseReduction:  "1",
		ParamLoadSystemDictionary: "1",
		ParamLoadFrequentWords:    "1",
		ParamAdaptiveMatcher:      "1",
		ParamAdaptiveThreshold:    "230",
	}
	profileHandwriting = map[Param]string{
		ParamSegmentationMode:     "6",
		ParamEngineMode:           "1",
		ParamMinCharHeight:        "8",
		ParamNoiseSizeFraction:    "12",
		ParamHeavyNoiseReduction:  "0",
		ParamLoadSystemDictionary: "0",
		ParamLoadFrequentWords:    "0",
		ParamAdaptiveMatcher:      "1",
		ParamAdaptiveThreshold:    "200",
	}
)

// SelectConfig maps image resolution and estimated content shape to an engine
// configuration. The selector is stateless and never fails: an unrecognized
// content kind falls back to the general profile, so every input combination
// yields a valid config.
func SelectConfig(width, height int, size TextSize, kind ContentKind) Config {
	var base map[Param]string
	switch kind {
	case ContentSingleLine:
		base = profileSingleLine
	case ContentMultiColumn:
		base = profileMultiColumn
	case ContentHandwriting:
		base = profileHandwriting
	case ContentParagraph:
		if size == TextSizeSmall {
			base = profileSmallText
		} else {
			base = profileGeneral
		}
	default:
		base = profileGeneral
	}

	params := make(map[Param]string, len(base))
	for k, v := range base {
		params[k] = v
	}
	applyResolutionOverride(params, width*height)

	// Profiles only contain known parameters, so validation is unnecessary.
	return Config{params: params}
}

// applyResolutionOverride relaxes size-based thresholds at high resolution,
// where genuine detail survives filtering, and tightens them at low
// resolution, where small strokes are easily mistaken for noise.
func applyResolutionOverride(params map[Param]string, pixels int) {
	switch {
	case pixels > highResolutionPixels:
		scaleParam(params, ParamMinCharHeight, 0.6)
		scaleParam(params, ParamNoiseSizeFraction, 0.7)
	case pixels > 0 && pixels < lowResolutionPixels:
		scaleParam(params, ParamMinCharHeight, 1.4)
		scaleParam(params, ParamNoiseSizeFraction, 1.3)
		params[ParamHeavyNoiseReduction] = "0"
	}
}

func scaleParam(params map[Param]string, p Param, factor float64) {
	v, ok := params[p]
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return
	}
	scaled := int(f*factor + 0.5)
	if scaled < 1 {
		scaled = 1
	}
	params[p] = strconv.Itoa(scaled)
}

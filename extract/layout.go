package extract

// DetectLayout is a placeholder for region-level layout detection. It splits
// the page into three fixed horizontal bands (header, body, footer) with no
// text and no confidence claim beyond the stub value. A real detector would
// replace this wholesale; nothing in the extraction pipeline depends on its
// output shape beyond []Region.
func DetectLayout(width, height float64) []Region {
	const stubConfidence = 0.5
	header := height * 0.1
	footer := height * 0.1
	body := height - header - footer
	return []Region{
		{
			ID:         newRegionID(),
			Kind:       RegionHeading,
			X:          0,
			Y:          height - header,
			Width:      width,
			Height:     header,
			Confidence: stubConfidence,
		},
		{
			ID:         newRegionID(),
			Kind:       RegionParagraph,
			X:          0,
			Y:          footer,
			Width:      width,
			Height:     body,
			Confidence: stubConfidence,
		},
		{
			ID:         newRegionID(),
			Kind:       RegionParagraph,
			X:          0,
			Y:          0,
			Width:      width,
			Height:     footer,
			Confidence: stubConfidence,
		},
	}
}

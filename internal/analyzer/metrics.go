package analyzer

// Metrics is the common analysis output shape, whether it came from the
// remote analyzer service or the local fallback.
type Metrics struct {
	WPM              float64  `json:"wpm"`
	FillerCount      int      `json:"filler_count"`
	FillerWordsFound []string `json:"filler_words_found"`
	AccuracyScore    *int     `json:"accuracy_score"` // nil iff no prompt text
}

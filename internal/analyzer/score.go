package analyzer

import "math"

const (
	idealWPM         = 150.0
	fillerPenaltyCap = 30
	neutralAccuracy  = 75 // accuracy term used when no prompt was given
)

// Score combines pace, accuracy and filler usage into the 0-100 headline
// score:
//
//	wpmScore      = clamp((wpm / 150) * 100, 0, 100)
//	fillerPenalty = min(fillerCount * 5, 30)
//	accuracyTerm  = accuracyScore, or 75 when nil
//	overall       = round(wpmScore*0.3 + accuracyTerm*0.5 + (100-fillerPenalty)*0.2)
//
// 150 WPM is the ideal pace ceiling; accuracy carries the most weight when a
// prompt exists; the filler penalty is capped so fillers alone cannot zero a
// session out.
func Score(wpm float64, fillerCount int, accuracyScore *int) int {
	wpmScore := wpm / idealWPM * 100
	if wpmScore > 100 {
		wpmScore = 100
	}
	if wpmScore < 0 {
		wpmScore = 0
	}

	fillerPenalty := fillerCount * 5
	if fillerPenalty > fillerPenaltyCap {
		fillerPenalty = fillerPenaltyCap
	}

	accuracyTerm := neutralAccuracy
	if accuracyScore != nil {
		accuracyTerm = *accuracyScore
	}

	return int(math.Round(wpmScore*0.3 + float64(accuracyTerm)*0.5 + float64(100-fillerPenalty)*0.2))
}

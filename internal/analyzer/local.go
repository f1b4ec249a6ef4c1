package analyzer

import (
	"math"
	"regexp"
	"strings"
)

// fillerWords is the fixed filler vocabulary. Detection order for
// FillerWordsFound follows this list.
var fillerWords = []string{
	"um", "uh", "ah", "er", "basically", "actually", "literally",
	"like", "you know", "i mean", "sort of", "kind of", "right",
	"okay so", "so yeah", "only", "simply",
}

var fillerPatterns = compileFillerPatterns()

func compileFillerPatterns() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(fillerWords))
	for i, f := range fillerWords {
		res[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(f) + `\b`)
	}
	return res
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// Fallback computes metrics locally, in-process. It is the deterministic
// substitute used when the remote analyzer service is unavailable.
func Fallback(transcript string, durationSecs float64, promptText *string) Metrics {
	count, found := DetectFillers(transcript)

	m := Metrics{
		WPM:              WordsPerMinute(transcript, durationSecs),
		FillerCount:      count,
		FillerWordsFound: found,
	}

	if promptText != nil {
		score := TextAccuracy(transcript, *promptText)
		m.AccuracyScore = &score
	}

	return m
}

// WordsPerMinute splits the transcript on whitespace and divides by the clip
// length. Returns 0 when the duration is unknown or non-positive.
func WordsPerMinute(transcript string, durationSecs float64) float64 {
	if durationSecs <= 0 {
		return 0
	}
	words := len(strings.Fields(transcript))
	return math.Round(float64(words)/(durationSecs/60)*10) / 10
}

// DetectFillers counts whole-word filler occurrences (case-insensitive) and
// returns the total count plus each distinct filler found, in list order.
func DetectFillers(transcript string) (int, []string) {
	lower := strings.ToLower(transcript)

	total := 0
	var found []string
	for i, re := range fillerPatterns {
		n := len(re.FindAllStringIndex(lower, -1))
		if n > 0 {
			total += n
			found = append(found, fillerWords[i])
		}
	}
	return total, found
}

// FillerOccurrences returns per-filler occurrence counts for the transcript.
// Used by onboarding to accumulate filler patterns across seed clips.
func FillerOccurrences(transcript string) map[string]int {
	lower := strings.ToLower(transcript)

	counts := make(map[string]int)
	for i, re := range fillerPatterns {
		if n := len(re.FindAllStringIndex(lower, -1)); n > 0 {
			counts[fillerWords[i]] = n
		}
	}
	return counts
}

// TextAccuracy scores how closely the transcript matches the prompt the user
// was asked to read. Both texts are lower-cased, stripped of punctuation and
// tokenized; a transcript token counts as matched when it appears anywhere in
// the prompt's token set. Token order is not enforced.
func TextAccuracy(transcript, prompt string) int {
	transcriptWords := normalizeTokens(transcript)
	promptWords := normalizeTokens(prompt)

	promptSet := make(map[string]struct{}, len(promptWords))
	for _, w := range promptWords {
		promptSet[w] = struct{}{}
	}

	matches := 0
	for _, w := range transcriptWords {
		if _, ok := promptSet[w]; ok {
			matches++
		}
	}

	denom := len(promptWords)
	if denom < 1 {
		denom = 1
	}
	score := int(math.Round(float64(matches) / float64(denom) * 100))
	if score > 100 {
		score = 100
	}
	return score
}

func normalizeTokens(s string) []string {
	return strings.Fields(punctuation.ReplaceAllString(strings.ToLower(s), ""))
}

package tips

import (
	"fmt"
	"strings"
)

const transcriptExcerptLen = 500

const systemPrompt = `You are BOLI, a warm, encouraging speaking coach for Indian students preparing for job interviews.
Your role is to build confidence, not criticize.
Rules:
- Always acknowledge something positive first
- Give exactly 2-3 tips, each one sentence long
- Never mention "accent" negatively
- Frame everything as skill-building: "try" not "you should"
- Use simple language (8th grade reading level)
- Be specific — reference actual words or scores from the session
- Return ONLY a JSON array of strings. No preamble, no markdown, no explanation.
Example output: ["Great energy in your voice!", "Try pausing for 1 second instead of saying 'basically'.", "Your pace of 127 WPM is very good — keep it up!"]`

// BuildPrompt builds the system and user prompts for the coaching LLM
func BuildPrompt(tc Context) (string, string) {
	fillerList := "none detected"
	if len(tc.FillerWordsFound) > 0 {
		fillerList = strings.Join(tc.FillerWordsFound, ", ")
	}

	accuracyLine := "- Accuracy score: N/A (free practice mode)"
	if tc.AccuracyScore != nil {
		suffix := ""
		if tc.PromptText != nil {
			suffix = " (compared to target text)"
		}
		accuracyLine = fmt.Sprintf("- Accuracy score: %d%%%s", *tc.AccuracyScore, suffix)
	}

	userPrompt := fmt.Sprintf(`Student speaking session data:
- Transcript: "%s"
- Speaking pace: %g words per minute (ideal: 130–150 WPM for interviews)
- Filler words detected: %s (used %d times total)
%s
- Session type: %s
- Student's native language: %s

Give them 2-3 encouraging, specific tips to improve.
Return only a JSON array of strings.`,
		truncate(tc.Transcript, transcriptExcerptLen),
		tc.WPM,
		fillerList,
		tc.FillerCount,
		accuracyLine,
		tc.SessionKind,
		tc.NativeLanguage,
	)

	return systemPrompt, userPrompt
}

// truncate limits s to maxLen characters (runes, so multi-byte text is not cut mid-character)
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

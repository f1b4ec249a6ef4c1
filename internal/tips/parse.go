package tips

import (
	"encoding/json"
	"regexp"
)

// arrayPattern finds the first bracketed substring in a response that wraps
// the JSON array in extra prose or markdown.
var arrayPattern = regexp.MustCompile(`(?s)\[.*?\]`)

// ParseTips extracts a list of tip strings from an LLM response. It tries a
// direct JSON-array parse first, then falls back to locating the first
// [...] substring. Returns nil when no strings can be recovered.
func ParseTips(content string) []string {
	if tips := parseStringArray(content); tips != nil {
		return tips
	}

	if match := arrayPattern.FindString(content); match != "" {
		return parseStringArray(match)
	}

	return nil
}

func parseStringArray(s string) []string {
	var parsed []string
	// Unmarshal into []string rejects arrays with non-string elements.
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return nil
	}
	if len(parsed) == 0 {
		return nil
	}
	return parsed
}

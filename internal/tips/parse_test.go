package tips

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseTips(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			"direct json array",
			`["Great pace!", "Try pausing instead of saying 'um'."]`,
			[]string{"Great pace!", "Try pausing instead of saying 'um'."},
		},
		{
			"array wrapped in prose",
			`Here are your tips: ["Nice work!", "Slow down a little."] Hope that helps!`,
			[]string{"Nice work!", "Slow down a little."},
		},
		{
			"array wrapped in markdown fence",
			"```json\n[\"Tip one\", \"Tip two\"]\n```",
			[]string{"Tip one", "Tip two"},
		},
		{"plain prose", "You did well, keep practicing.", nil},
		{"empty array", "[]", nil},
		{"non-string elements", "[1, 2, 3]", nil},
		{"empty content", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTips(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTips(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestBuildPrompt_AccuracyLine(t *testing.T) {
	_, user := BuildPrompt(Context{Transcript: "hello", WPM: 120})
	if !strings.Contains(user, "N/A (free practice mode)") {
		t.Errorf("prompt without accuracy should state free practice mode:\n%s", user)
	}

	acc := 85
	prompt := "hello there"
	_, user = BuildPrompt(Context{Transcript: "hello", WPM: 120, AccuracyScore: &acc, PromptText: &prompt})
	if !strings.Contains(user, "85% (compared to target text)") {
		t.Errorf("prompt with accuracy should embed the score:\n%s", user)
	}
}

func TestBuildPrompt_FillerLine(t *testing.T) {
	_, user := BuildPrompt(Context{Transcript: "x", FillerWordsFound: []string{"um", "like"}, FillerCount: 5})
	if !strings.Contains(user, "um, like (used 5 times total)") {
		t.Errorf("prompt should list fillers:\n%s", user)
	}

	_, user = BuildPrompt(Context{Transcript: "x"})
	if !strings.Contains(user, "none detected") {
		t.Errorf("prompt without fillers should say none detected:\n%s", user)
	}
}

func TestBuildPrompt_TruncatesTranscript(t *testing.T) {
	long := make([]rune, 2000)
	for i := range long {
		long[i] = 'a'
	}
	_, user := BuildPrompt(Context{Transcript: string(long)})
	if len(user) > 1200 {
		t.Errorf("prompt length = %d, transcript excerpt should be capped at 500 chars", len(user))
	}
}

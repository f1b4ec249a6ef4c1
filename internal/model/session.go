package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionKind tags what kind of speaking exercise produced a session.
type SessionKind string

const (
	KindPractice   SessionKind = "practice"
	KindDrill      SessionKind = "drill"
	KindShadow     SessionKind = "shadow"
	KindOnboarding SessionKind = "onboarding"
)

// Valid reports whether k is one of the known session kinds.
func (k SessionKind) Valid() bool {
	switch k {
	case KindPractice, KindDrill, KindShadow, KindOnboarding:
		return true
	}
	return false
}

// AnalysisInput carries one audio submission through the analysis pipeline.
// It is constructed per request and never mutated after the pipeline completes.
type AnalysisInput struct {
	Audio          []byte
	Filename       string // original upload filename hint, e.g. "recording.m4a"
	DurationSecs   float64
	Kind           SessionKind
	PromptText     *string // nil when the user spoke freely (no reference text)
	UserID         uuid.UUID
	NativeLanguage string
}

// AnalysisResult is what the pipeline returns to the caller after a session
// has been scored and persisted.
type AnalysisResult struct {
	SessionID        uuid.UUID `json:"session_id"`
	Transcript       string    `json:"transcript"`
	WPM              float64   `json:"wpm"`
	AccuracyScore    *int      `json:"accuracy_score"` // nil iff no prompt text was supplied
	FillerCount      int       `json:"filler_count"`
	FillerWordsFound []string  `json:"filler_words_found"`
	Tips             []string  `json:"tips"`
	OverallScore     int       `json:"overall_score"`
	AudioURL         string    `json:"audio_url"`
}

// Session is one persisted record of a single audio-analysis attempt.
type Session struct {
	ID               uuid.UUID   `json:"id"`
	UserID           uuid.UUID   `json:"user_id"`
	Kind             SessionKind `json:"type"`
	PromptText       *string     `json:"prompt_text,omitempty"`
	Transcript       string      `json:"transcript"`
	WPM              float64     `json:"wpm"`
	AccuracyScore    *int        `json:"accuracy_score,omitempty"`
	FillerCount      int         `json:"filler_count"`
	FillerWordsFound []string    `json:"filler_words_found"`
	Tips             []string    `json:"llm_tips"`
	AudioURL         string      `json:"audio_url,omitempty"`
	DurationSecs     float64     `json:"duration_secs"`
	OverallScore     *int        `json:"overall_score,omitempty"` // nil for onboarding seed sessions
	CreatedAt        time.Time   `json:"created_at"`
}

// DialectProfile is a user's baseline speaking profile built from the
// onboarding seed recordings.
type DialectProfile struct {
	UserID         uuid.UUID      `json:"user_id"`
	DetectedRegion string         `json:"detected_region"`
	FillerPatterns map[string]int `json:"filler_patterns"`
	AvgWPMBaseline float64        `json:"avg_wpm_baseline"`
	SeedSessionIDs []uuid.UUID    `json:"seed_session_ids"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

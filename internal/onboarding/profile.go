package onboarding

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/usicttechiete/boli.ai/internal/analyzer"
	"github.com/usicttechiete/boli.ai/internal/cache"
	"github.com/usicttechiete/boli.ai/internal/model"
	"github.com/usicttechiete/boli.ai/internal/pipeline"
	"github.com/usicttechiete/boli.ai/internal/repository"
	"github.com/usicttechiete/boli.ai/internal/stt"
)

// languageToRegion maps a declared native language to a coarse geographic
// region. A static lookup; nothing is inferred from audio.
var languageToRegion = map[string]string{
	"hindi":     "hindi_belt",
	"punjabi":   "hindi_belt",
	"marathi":   "western_india",
	"gujarati":  "western_india",
	"bengali":   "east_india",
	"odia":      "east_india",
	"tamil":     "south_india",
	"telugu":    "south_india",
	"kannada":   "south_india",
	"malayalam": "south_india",
}

// m4a/aac at ~128kbps: bytes / 16000 ≈ seconds. Rough estimate used only
// for the onboarding WPM baseline.
const bytesPerSecond = 16000

// Seed is one short onboarding recording.
type Seed struct {
	Audio    []byte
	Filename string
}

// Service builds a user's baseline dialect profile from seed recordings.
type Service struct {
	STT      stt.Provider
	Sessions repository.SessionRepository
	Profiles repository.DialectProfileRepository
	Cache    *cache.Cache
}

// NewService creates an onboarding service.
func NewService(provider stt.Provider, sessions repository.SessionRepository, profiles repository.DialectProfileRepository, c *cache.Cache) *Service {
	return &Service{STT: provider, Sessions: sessions, Profiles: profiles, Cache: c}
}

// BuildProfile transcribes each seed clip, computes per-clip WPM and filler
// patterns, averages the WPM baseline, looks up the user's region, persists
// one onboarding session per usable seed plus the dialect profile, and
// invalidates the user's cached profile. Seeds whose transcription fails are
// skipped; if every seed fails the whole call fails with an STT_FAILED error.
func (s *Service) BuildProfile(ctx context.Context, userID uuid.UUID, seeds []Seed, nativeLanguage string) (*model.DialectProfile, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("at least one seed recording is required")
	}

	type seedResult struct {
		transcript   string
		wpm          float64
		durationSecs float64
	}

	var results []seedResult
	for i, seed := range seeds {
		res, err := s.STT.Transcribe(ctx, seed.Audio, seed.Filename)
		if err != nil {
			log.Printf("[Onboarding] STT failed for seed %d, skipping: %v", i, err)
			continue
		}
		durationSecs := estimateDuration(seed.Audio)
		results = append(results, seedResult{
			transcript:   res.Transcript,
			wpm:          analyzer.WordsPerMinute(res.Transcript, durationSecs),
			durationSecs: durationSecs,
		})
	}

	if len(results) == 0 {
		return nil, &pipeline.CodedError{
			Code: pipeline.CodeSTTFailed,
			Err:  fmt.Errorf("speech recognition failed for all seed recordings"),
		}
	}

	// Average WPM baseline, rounded to 1 decimal
	sum := 0.0
	for _, r := range results {
		sum += r.wpm
	}
	avgWPM := math.Round(sum/float64(len(results))*10) / 10

	// Filler patterns accumulated across seeds
	fillerPatterns := make(map[string]int)
	for _, r := range results {
		for filler, n := range analyzer.FillerOccurrences(r.transcript) {
			fillerPatterns[filler] += n
		}
	}

	detectedRegion := "unknown"
	if region, ok := languageToRegion[strings.ToLower(nativeLanguage)]; ok {
		detectedRegion = region
	}

	// One onboarding session per usable seed
	var seedSessionIDs []uuid.UUID
	for _, r := range results {
		session, err := s.Sessions.Insert(ctx, &model.Session{
			UserID:           userID,
			Kind:             model.KindOnboarding,
			Transcript:       r.transcript,
			WPM:              r.wpm,
			FillerWordsFound: []string{},
			Tips:             []string{},
			DurationSecs:     r.durationSecs,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save onboarding session: %w", err)
		}
		seedSessionIDs = append(seedSessionIDs, session.ID)
	}

	profile := &model.DialectProfile{
		UserID:         userID,
		DetectedRegion: detectedRegion,
		FillerPatterns: fillerPatterns,
		AvgWPMBaseline: avgWPM,
		SeedSessionIDs: seedSessionIDs,
	}
	if err := s.Profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save dialect profile: %w", err)
	}

	if s.Cache != nil {
		s.Cache.Del(ctx, cache.ProfileKey(userID.String()), cache.DialectProfileKey(userID.String()))
	}

	log.Printf("[Onboarding] Profile created: user=%s region=%s baseline=%.1f wpm (%d/%d seeds usable)",
		userID, detectedRegion, avgWPM, len(results), len(seeds))

	return profile, nil
}

func estimateDuration(audio []byte) float64 {
	secs := float64(len(audio)) / bytesPerSecond
	if secs < 1 {
		return 1
	}
	return secs
}

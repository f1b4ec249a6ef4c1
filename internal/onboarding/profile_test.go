package onboarding

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/usicttechiete/boli.ai/internal/model"
	"github.com/usicttechiete/boli.ai/internal/pipeline"
	"github.com/usicttechiete/boli.ai/internal/stt"
)

// scriptedSTT returns one scripted transcript (or error) per call, keyed by
// call order.
type scriptedSTT struct {
	transcripts []string
	errs        []error
	calls       int
}

func (s *scriptedSTT) Transcribe(ctx context.Context, audio []byte, filename string) (*stt.Result, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	transcript := ""
	if i < len(s.transcripts) {
		transcript = s.transcripts[i]
	}
	return &stt.Result{Transcript: transcript, Provider: s.Name()}, nil
}

func (s *scriptedSTT) Name() string { return "scripted" }

type memSessions struct {
	sessions []*model.Session
	err      error
}

func (m *memSessions) Insert(ctx context.Context, session *model.Session) (*model.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	session.ID = uuid.New()
	m.sessions = append(m.sessions, session)
	return session, nil
}

func (m *memSessions) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	return nil, errors.New("not implemented")
}

func (m *memSessions) ListByUser(ctx context.Context, userID uuid.UUID, kind *model.SessionKind, limit, offset int) ([]model.Session, int, error) {
	return nil, 0, errors.New("not implemented")
}

type memProfiles struct {
	upserted *model.DialectProfile
	err      error
}

func (m *memProfiles) Upsert(ctx context.Context, profile *model.DialectProfile) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = profile
	return nil
}

func (m *memProfiles) GetByUser(ctx context.Context, userID uuid.UUID) (*model.DialectProfile, error) {
	return nil, errors.New("not implemented")
}

// oneSecondClip is exactly one estimated second of audio.
func oneSecondClip(seconds int) []byte {
	return bytes.Repeat([]byte{0}, seconds*bytesPerSecond)
}

func TestBuildProfile_RegionLookup(t *testing.T) {
	tests := []struct {
		language string
		region   string
	}{
		{"hindi", "hindi_belt"},
		{"Punjabi", "hindi_belt"},
		{"marathi", "western_india"},
		{"gujarati", "western_india"},
		{"bengali", "east_india"},
		{"odia", "east_india"},
		{"TAMIL", "south_india"},
		{"telugu", "south_india"},
		{"kannada", "south_india"},
		{"malayalam", "south_india"},
		{"klingon", "unknown"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		svc := NewService(
			&scriptedSTT{transcripts: []string{"hello there"}},
			&memSessions{}, &memProfiles{}, nil,
		)
		profile, err := svc.BuildProfile(context.Background(), uuid.New(),
			[]Seed{{Audio: oneSecondClip(1), Filename: "seed_0.m4a"}}, tt.language)
		if err != nil {
			t.Fatalf("BuildProfile(%q) returned error: %v", tt.language, err)
		}
		if profile.DetectedRegion != tt.region {
			t.Errorf("DetectedRegion for %q = %q, want %q", tt.language, profile.DetectedRegion, tt.region)
		}
	}
}

func TestBuildProfile_AverageWPMBaseline(t *testing.T) {
	// Seed 1: 3 words / 2s = 90 wpm. Seed 2: 2 words / 1s = 120 wpm.
	// Baseline = (90+120)/2 = 105.0.
	sttP := &scriptedSTT{transcripts: []string{"I am ready", "hello there"}}
	profiles := &memProfiles{}
	svc := NewService(sttP, &memSessions{}, profiles, nil)

	profile, err := svc.BuildProfile(context.Background(), uuid.New(), []Seed{
		{Audio: oneSecondClip(2), Filename: "seed_0.m4a"},
		{Audio: oneSecondClip(1), Filename: "seed_1.m4a"},
	}, "hindi")
	if err != nil {
		t.Fatalf("BuildProfile returned error: %v", err)
	}

	if profile.AvgWPMBaseline != 105.0 {
		t.Errorf("AvgWPMBaseline = %v, want 105.0", profile.AvgWPMBaseline)
	}
	if profiles.upserted == nil {
		t.Fatal("profile was never persisted")
	}
	if profiles.upserted.AvgWPMBaseline != 105.0 {
		t.Errorf("persisted AvgWPMBaseline = %v, want 105.0", profiles.upserted.AvgWPMBaseline)
	}
}

func TestBuildProfile_FillerPatternsAccumulate(t *testing.T) {
	sttP := &scriptedSTT{transcripts: []string{
		"um so I was like thinking",
		"um um basically it works",
	}}
	svc := NewService(sttP, &memSessions{}, &memProfiles{}, nil)

	profile, err := svc.BuildProfile(context.Background(), uuid.New(), []Seed{
		{Audio: oneSecondClip(1), Filename: "seed_0.m4a"},
		{Audio: oneSecondClip(1), Filename: "seed_1.m4a"},
	}, "tamil")
	if err != nil {
		t.Fatalf("BuildProfile returned error: %v", err)
	}

	if got := profile.FillerPatterns["um"]; got != 3 {
		t.Errorf(`FillerPatterns["um"] = %d, want 3 (1 + 2 across seeds)`, got)
	}
	if got := profile.FillerPatterns["like"]; got != 1 {
		t.Errorf(`FillerPatterns["like"] = %d, want 1`, got)
	}
	if got := profile.FillerPatterns["basically"]; got != 1 {
		t.Errorf(`FillerPatterns["basically"] = %d, want 1`, got)
	}
	if _, ok := profile.FillerPatterns["thinking"]; ok {
		t.Error(`"thinking" is not a filler and should not be counted`)
	}
}

func TestBuildProfile_FailedSeedsAreSkipped(t *testing.T) {
	sttP := &scriptedSTT{
		transcripts: []string{"", "I am ready", ""},
		errs:        []error{errors.New("timeout"), nil, errors.New("timeout")},
	}
	sessions := &memSessions{}
	svc := NewService(sttP, sessions, &memProfiles{}, nil)

	userID := uuid.New()
	profile, err := svc.BuildProfile(context.Background(), userID, []Seed{
		{Audio: oneSecondClip(1), Filename: "seed_0.m4a"},
		{Audio: oneSecondClip(2), Filename: "seed_1.m4a"},
		{Audio: oneSecondClip(1), Filename: "seed_2.m4a"},
	}, "hindi")
	if err != nil {
		t.Fatalf("BuildProfile returned error: %v", err)
	}

	// Only the usable seed gets a session and contributes to the baseline.
	if len(sessions.sessions) != 1 {
		t.Fatalf("sessions persisted = %d, want 1", len(sessions.sessions))
	}
	if sessions.sessions[0].Kind != model.KindOnboarding {
		t.Errorf("session Kind = %q, want onboarding", sessions.sessions[0].Kind)
	}
	if profile.AvgWPMBaseline != 90.0 {
		t.Errorf("AvgWPMBaseline = %v, want 90.0 from the single usable seed", profile.AvgWPMBaseline)
	}
	if len(profile.SeedSessionIDs) != 1 {
		t.Errorf("SeedSessionIDs = %d entries, want 1", len(profile.SeedSessionIDs))
	}
}

func TestBuildProfile_AllSeedsFailed(t *testing.T) {
	sttP := &scriptedSTT{
		errs: []error{errors.New("down"), errors.New("down")},
	}
	svc := NewService(sttP, &memSessions{}, &memProfiles{}, nil)

	_, err := svc.BuildProfile(context.Background(), uuid.New(), []Seed{
		{Audio: oneSecondClip(1), Filename: "seed_0.m4a"},
		{Audio: oneSecondClip(1), Filename: "seed_1.m4a"},
	}, "hindi")
	if err == nil {
		t.Fatal("BuildProfile should fail when every seed fails")
	}

	var coded *pipeline.CodedError
	if !errors.As(err, &coded) || coded.Code != pipeline.CodeSTTFailed {
		t.Errorf("err = %v, want CodedError with STT_FAILED", err)
	}
}

func TestBuildProfile_NoSeeds(t *testing.T) {
	svc := NewService(&scriptedSTT{}, &memSessions{}, &memProfiles{}, nil)
	if _, err := svc.BuildProfile(context.Background(), uuid.New(), nil, "hindi"); err == nil {
		t.Fatal("BuildProfile should reject an empty seed list")
	}
}

func TestBuildProfile_SessionPerUsableSeed(t *testing.T) {
	sttP := &scriptedSTT{transcripts: []string{"one", "two words", "three whole words"}}
	sessions := &memSessions{}
	svc := NewService(sttP, sessions, &memProfiles{}, nil)

	profile, err := svc.BuildProfile(context.Background(), uuid.New(), []Seed{
		{Audio: oneSecondClip(1), Filename: "seed_0.m4a"},
		{Audio: oneSecondClip(1), Filename: "seed_1.m4a"},
		{Audio: oneSecondClip(1), Filename: "seed_2.m4a"},
	}, "bengali")
	if err != nil {
		t.Fatalf("BuildProfile returned error: %v", err)
	}
	if len(sessions.sessions) != 3 {
		t.Errorf("sessions persisted = %d, want 3", len(sessions.sessions))
	}
	if len(profile.SeedSessionIDs) != 3 {
		t.Errorf("SeedSessionIDs = %d entries, want 3", len(profile.SeedSessionIDs))
	}
}

func TestEstimateDuration(t *testing.T) {
	if got := estimateDuration(oneSecondClip(3)); got != 3.0 {
		t.Errorf("estimateDuration(3s clip) = %v, want 3.0", got)
	}
	// Clips shorter than one estimated second clamp up to 1.
	if got := estimateDuration([]byte("tiny")); got != 1.0 {
		t.Errorf("estimateDuration(tiny clip) = %v, want 1.0", got)
	}
}

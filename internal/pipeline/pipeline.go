package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/usicttechiete/boli.ai/internal/analyzer"
	"github.com/usicttechiete/boli.ai/internal/model"
	"github.com/usicttechiete/boli.ai/internal/repository"
	"github.com/usicttechiete/boli.ai/internal/retry"
	"github.com/usicttechiete/boli.ai/internal/stt"
	"github.com/usicttechiete/boli.ai/internal/storage"
	"github.com/usicttechiete/boli.ai/internal/tips"
)

const (
	audioContentType = "audio/mp4"
	signedURLTTL     = 60 * 60 * 24 * 7 // 7 days
)

// MetricsAnalyzer is the remote metrics analyzer contract. Any error makes
// the pipeline fall back to the local analyzer, silently.
type MetricsAnalyzer interface {
	Analyze(ctx context.Context, req analyzer.Request) (*analyzer.Metrics, error)
}

// Runner orchestrates the analysis pipeline:
//
//	1. STORAGE:  upload audio, obtain a signed URL (fatal on exhaustion)
//	2. STT:      transcribe (fatal; a session without a transcript has no
//	             analyzable content)
//	3. ANALYSIS: remote metrics analyzer, local fallback on any error
//	4. TIPS:     LLM coaching tips, static fallback (never fails)
//	5. SCORE:    deterministic overall score
//	6. PERSIST:  insert the session record (fatal, generic error)
//
// Steps run sequentially; each pipeline run is independent and touches no
// shared mutable state beyond the audio and session stores.
type Runner struct {
	Store    storage.AudioStore
	STT      stt.Provider
	Remote   MetricsAnalyzer // may be nil: analysis goes straight to the local fallback
	Tips     tips.Generator
	Sessions repository.SessionRepository

	// UploadRetry covers the combined upload+sign step: 3 attempts with
	// exponential backoff starting at 500ms.
	UploadRetry retry.Policy
}

// NewRunner wires a pipeline with the default retry policy.
func NewRunner(store storage.AudioStore, provider stt.Provider, remote MetricsAnalyzer, generator tips.Generator, sessions repository.SessionRepository) *Runner {
	return &Runner{
		Store:       store,
		STT:         provider,
		Remote:      remote,
		Tips:        generator,
		Sessions:    sessions,
		UploadRetry: retry.Policy{MaxAttempts: 3, BaseDelay: 500 * time.Millisecond, Multiplier: 2},
	}
}

// Run executes the pipeline for one submission. Fatal errors carry a
// CodedError (STORAGE_FAILED, STT_FAILED) or are generic for persistence
// failure; every other step failure is absorbed via fallback. Nothing is
// persisted unless every prior step has produced a value, and a result is
// persisted at most once per run.
func (r *Runner) Run(ctx context.Context, input model.AnalysisInput) (*model.AnalysisResult, error) {
	// Step 1: storage
	storagePath := fmt.Sprintf("%s/%d.m4a", input.UserID, time.Now().UnixMilli())

	var audioURL string
	err := r.UploadRetry.Do(ctx, "storage upload", func() error {
		if err := r.Store.Upload(ctx, input.Audio, storagePath, audioContentType); err != nil {
			return err
		}
		url, err := r.Store.CreateSignedURL(ctx, storagePath, signedURLTTL)
		if err != nil {
			return err
		}
		audioURL = url
		return nil
	})
	if err != nil {
		log.Printf("[Pipeline] Audio storage failed for user %s: %v", input.UserID, err)
		return nil, &CodedError{Code: CodeStorageFailed, Err: err}
	}

	// Step 2: transcription. The provider owns its retry budget; a terminal
	// failure aborts the pipeline.
	sttResult, err := r.STT.Transcribe(ctx, input.Audio, input.Filename)
	if err != nil {
		log.Printf("[Pipeline] STT failed for user %s: %v", input.UserID, err)
		return nil, &CodedError{Code: CodeSTTFailed, Err: err}
	}
	transcript := sttResult.Transcript

	// Step 3: metrics analysis, remote first
	metrics := r.analyze(ctx, transcript, input)

	// Step 4: coaching tips (never fails)
	tipList := r.Tips.Generate(ctx, tips.Context{
		Transcript:       transcript,
		WPM:              metrics.WPM,
		FillerWordsFound: metrics.FillerWordsFound,
		FillerCount:      metrics.FillerCount,
		AccuracyScore:    metrics.AccuracyScore,
		SessionKind:      input.Kind,
		NativeLanguage:   input.NativeLanguage,
		PromptText:       input.PromptText,
	})

	// Step 5: overall score
	overallScore := analyzer.Score(metrics.WPM, metrics.FillerCount, metrics.AccuracyScore)

	// Step 6: persist
	session, err := r.Sessions.Insert(ctx, &model.Session{
		UserID:           input.UserID,
		Kind:             input.Kind,
		PromptText:       input.PromptText,
		Transcript:       transcript,
		WPM:              metrics.WPM,
		AccuracyScore:    metrics.AccuracyScore,
		FillerCount:      metrics.FillerCount,
		FillerWordsFound: metrics.FillerWordsFound,
		Tips:             tipList,
		AudioURL:         audioURL,
		DurationSecs:     input.DurationSecs,
		OverallScore:     &overallScore,
	})
	if err != nil {
		log.Printf("[Pipeline] Failed to persist session for user %s: %v", input.UserID, err)
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Printf("[Pipeline] Analysis complete: session=%s user=%s score=%d", session.ID, input.UserID, overallScore)

	return &model.AnalysisResult{
		SessionID:        session.ID,
		Transcript:       transcript,
		WPM:              metrics.WPM,
		AccuracyScore:    metrics.AccuracyScore,
		FillerCount:      metrics.FillerCount,
		FillerWordsFound: metrics.FillerWordsFound,
		Tips:             tipList,
		OverallScore:     overallScore,
		AudioURL:         audioURL,
	}, nil
}

// analyze calls the remote analyzer once (no retry) and silently falls back
// to the local analyzer on any error.
func (r *Runner) analyze(ctx context.Context, transcript string, input model.AnalysisInput) analyzer.Metrics {
	if r.Remote != nil {
		m, err := r.Remote.Analyze(ctx, analyzer.Request{
			Transcript:   transcript,
			DurationSecs: input.DurationSecs,
			PromptText:   input.PromptText,
			SessionType:  input.Kind,
		})
		if err == nil {
			return *m
		}
		log.Printf("[Pipeline] Remote analyzer failed, using local fallback: %v", err)
	}
	return analyzer.Fallback(transcript, input.DurationSecs, input.PromptText)
}

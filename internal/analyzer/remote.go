package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/usicttechiete/boli.ai/internal/model"
)

const remoteTimeout = 15 * time.Second

// Request is the payload sent to the remote analyzer service.
type Request struct {
	Transcript   string            `json:"transcript"`
	DurationSecs float64           `json:"duration_secs"`
	PromptText   *string           `json:"prompt_text"`
	SessionType  model.SessionKind `json:"session_type"`
}

// Remote calls the analyzer service over HTTP. Any failure (network, timeout,
// malformed response) is returned to the caller, which falls back to the
// local analyzer. The remote analyzer is never retried.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a remote analyzer client for the given service base URL.
func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: baseURL,
		client:  &http.Client{Timeout: remoteTimeout},
	}
}

// remoteResponse mirrors the service's JSON payload. Pointer fields let us
// reject responses that are missing required values instead of silently
// defaulting them.
type remoteResponse struct {
	WPM              *float64 `json:"wpm"`
	FillerCount      *int     `json:"filler_count"`
	FillerWordsFound []string `json:"filler_words_found"`
	AccuracyScore    *int     `json:"accuracy_score"`
}

// Analyze posts the transcript to the analyzer service and validates the
// response shape before converting it to Metrics.
func (r *Remote) Analyze(ctx context.Context, req Request) (*Metrics, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal analyzer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create analyzer request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call analyzer service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read analyzer response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyzer service returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed remoteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse analyzer response: %w", err)
	}

	if parsed.WPM == nil || parsed.FillerCount == nil {
		return nil, fmt.Errorf("analyzer response missing wpm or filler_count")
	}
	if *parsed.WPM < 0 || *parsed.FillerCount < 0 {
		return nil, fmt.Errorf("analyzer response has negative wpm or filler_count")
	}

	found := parsed.FillerWordsFound
	if found == nil {
		found = []string{}
	}

	return &Metrics{
		WPM:              *parsed.WPM,
		FillerCount:      *parsed.FillerCount,
		FillerWordsFound: found,
		AccuracyScore:    parsed.AccuracyScore,
	}, nil
}

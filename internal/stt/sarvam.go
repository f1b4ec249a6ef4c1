package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/usicttechiete/boli.ai/internal/retry"
)

const (
	sarvamModel    = "saarika:v2"
	sarvamLanguage = "en-IN"
	sarvamTimeout  = 30 * time.Second
)

// SarvamProvider implements STT using the Sarvam speech-to-text API
type SarvamProvider struct {
	apiKey string
	url    string
	client *http.Client

	// Retry is the provider's own retry budget: 3 attempts with a fixed
	// 1 second delay between them.
	Retry retry.Policy
}

// NewSarvamProvider creates a new Sarvam STT provider
func NewSarvamProvider(apiKey, url string) *SarvamProvider {
	return &SarvamProvider{
		apiKey: apiKey,
		url:    url,
		client: &http.Client{Timeout: sarvamTimeout},
		Retry:  retry.Policy{MaxAttempts: 3, BaseDelay: time.Second},
	}
}

// Name returns the provider name
func (p *SarvamProvider) Name() string {
	return "sarvam"
}

// sarvamResponse represents the Sarvam STT API response
type sarvamResponse struct {
	Transcript *string `json:"transcript"`
}

// Transcribe sends audio bytes to the Sarvam STT API and returns the
// transcript. An empty transcript (silence) is valid and not an error.
func (p *SarvamProvider) Transcribe(ctx context.Context, audio []byte, filename string) (*Result, error) {
	log.Printf("[Sarvam STT] Transcribing audio: %s, size: %d bytes", filename, len(audio))

	var result *Result
	err := p.Retry.Do(ctx, "sarvam stt", func() error {
		res, err := p.transcribeOnce(ctx, audio, filename)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sarvam STT failed after %d attempts: %w", p.Retry.MaxAttempts, err)
	}

	log.Printf("[Sarvam STT] Transcription successful: length=%d", len(result.Transcript))
	return result, nil
}

func (p *SarvamProvider) transcribeOnce(ctx context.Context, audio []byte, filename string) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("failed to write audio to form: %w", err)
	}
	_ = writer.WriteField("language_code", sarvamLanguage)
	_ = writer.WriteField("model", sarvamModel)
	_ = writer.WriteField("with_timestamps", "false")
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("api-subscription-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Sarvam: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sarvam API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed sarvamResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		log.Printf("[Sarvam STT] Failed to parse response. Raw body: %s", string(respBody))
		return nil, fmt.Errorf("failed to parse Sarvam response: %w", err)
	}

	if parsed.Transcript == nil {
		return nil, fmt.Errorf("sarvam response has no transcript field")
	}

	return &Result{
		Transcript:  strings.TrimSpace(*parsed.Transcript),
		Provider:    p.Name(),
		RawResponse: string(respBody),
	}, nil
}

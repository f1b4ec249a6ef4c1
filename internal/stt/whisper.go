package stt

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/usicttechiete/boli.ai/internal/retry"
)

// WhisperProvider implements STT using the OpenAI Whisper API
type WhisperProvider struct {
	client *openai.Client

	Retry retry.Policy
}

// NewWhisperProvider creates a new Whisper STT provider
func NewWhisperProvider(apiKey string) *WhisperProvider {
	return &WhisperProvider{
		client: openai.NewClient(apiKey),
		Retry:  retry.Policy{MaxAttempts: 3, BaseDelay: time.Second},
	}
}

// Name returns the provider name
func (p *WhisperProvider) Name() string {
	return "whisper"
}

// Transcribe sends audio bytes to the Whisper API and returns the transcript
func (p *WhisperProvider) Transcribe(ctx context.Context, audio []byte, filename string) (*Result, error) {
	log.Printf("[Whisper STT] Transcribing audio: %s, size: %d bytes", filename, len(audio))

	var result *Result
	err := p.Retry.Do(ctx, "whisper stt", func() error {
		resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    openai.Whisper1,
			FilePath: filename,
			Reader:   bytes.NewReader(audio),
		})
		if err != nil {
			return fmt.Errorf("whisper API error: %w", err)
		}
		result = &Result{
			Transcript:  strings.TrimSpace(resp.Text),
			Provider:    p.Name(),
			RawResponse: resp.Text,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("whisper STT failed after %d attempts: %w", p.Retry.MaxAttempts, err)
	}

	log.Printf("[Whisper STT] Transcription successful: length=%d", len(result.Transcript))
	return result, nil
}

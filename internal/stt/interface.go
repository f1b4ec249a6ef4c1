package stt

import "context"

// Provider defines the interface for speech-to-text providers
type Provider interface {
	// Transcribe transcribes raw audio bytes and returns the result.
	// Each provider owns its own retry budget; an error from Transcribe
	// means the budget is exhausted.
	Transcribe(ctx context.Context, audio []byte, filename string) (*Result, error)

	// Name returns the name of the provider (e.g., "sarvam", "whisper")
	Name() string
}

package stt

// Result represents the result of a speech-to-text transcription
type Result struct {
	Transcript  string // The transcribed text; empty for silence
	Provider    string // The provider used (e.g., "sarvam", "whisper")
	RawResponse string // Raw response from the provider (for debugging/logging)
}

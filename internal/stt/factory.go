package stt

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// CreateProvider creates an STT provider based on environment configuration
func CreateProvider() (Provider, error) {
	providerName := strings.ToLower(os.Getenv("STT_PROVIDER"))

	// Default to Sarvam if not specified
	if providerName == "" {
		providerName = "sarvam"
		log.Printf("[STT Factory] STT_PROVIDER not set, defaulting to 'sarvam'")
	}

	switch providerName {
	case "sarvam":
		return createSarvamProvider()
	case "whisper", "openai":
		return createWhisperProvider()
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: sarvam, whisper", providerName)
	}
}

// createSarvamProvider creates a Sarvam STT provider
func createSarvamProvider() (Provider, error) {
	apiKey := os.Getenv("SARVAM_API_KEY")
	url := os.Getenv("SARVAM_STT_URL")

	if apiKey == "" {
		return nil, fmt.Errorf("SARVAM_API_KEY environment variable is not set")
	}

	if url == "" {
		url = "https://api.sarvam.ai/speech-to-text"
		log.Printf("[STT Factory] SARVAM_STT_URL not set, using default: %s", url)
	}

	log.Printf("[STT Factory] Creating Sarvam STT provider")
	return NewSarvamProvider(apiKey, url), nil
}

// createWhisperProvider creates an OpenAI Whisper STT provider
func createWhisperProvider() (Provider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	log.Printf("[STT Factory] Creating Whisper STT provider")
	return NewWhisperProvider(apiKey), nil
}

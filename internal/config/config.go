package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port string

	DatabaseURL string
	RedisURL    string

	SupabaseURL        string
	SupabaseServiceKey string
	StorageBucket      string

	SarvamAPIKey string
	SarvamSTTURL string
	SarvamLLMURL string

	AnalyzerURL string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		StorageBucket:      getEnv("STORAGE_BUCKET", "recordings"),
		SarvamAPIKey:       os.Getenv("SARVAM_API_KEY"),
		SarvamSTTURL:       getEnv("SARVAM_STT_URL", "https://api.sarvam.ai/speech-to-text"),
		SarvamLLMURL:       getEnv("SARVAM_LLM_URL", "https://api.sarvam.ai/v1"),
		AnalyzerURL:        getEnv("ANALYZER_SERVICE_URL", "http://localhost:8000"),
	}

	// Validate required environment variables
	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required. Please set it as environment variable, e.g.:\n  export SUPABASE_URL=\"https://yourproject.supabase.co\"")
	}
	if cfg.SupabaseServiceKey == "" {
		return nil, fmt.Errorf("SUPABASE_SERVICE_KEY is required. Please set it as environment variable:\n  export SUPABASE_SERVICE_KEY=\"your_service_role_key\"")
	}
	if cfg.SarvamAPIKey == "" {
		return nil, fmt.Errorf("SARVAM_API_KEY is required. Please set it as environment variable:\n  export SARVAM_API_KEY=\"your_key\"")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

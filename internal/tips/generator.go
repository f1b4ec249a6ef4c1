package tips

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/usicttechiete/boli.ai/internal/model"
	"github.com/usicttechiete/boli.ai/internal/retry"
)

const (
	llmModel       = "sarvam-m"
	llmTemperature = 0.7
	llmMaxTokens   = 300
	llmTimeout     = 20 * time.Second

	maxTips = 3
)

// FallbackTips are returned when the LLM fails. The session still succeeds.
var FallbackTips = []string{
	"Keep practicing — consistency is the key to confident speaking.",
	"Try recording yourself daily for 5 minutes to track your progress.",
	"Focus on pausing naturally between sentences instead of using filler words.",
}

// Context carries everything the coaching prompt embeds about a session.
type Context struct {
	Transcript       string
	WPM              float64
	FillerWordsFound []string
	FillerCount      int
	AccuracyScore    *int
	SessionKind      model.SessionKind
	NativeLanguage   string
	PromptText       *string
}

// Generator produces coaching tips for a session. Implementations never
// fail: on any error they return the fallback tip set.
type Generator interface {
	Generate(ctx context.Context, tc Context) []string
}

// LLMGenerator generates tips through an OpenAI-compatible chat completions
// endpoint (Sarvam's by default).
type LLMGenerator struct {
	client *openai.Client

	// Retry is 2 total attempts (1 retry), no delay between them.
	Retry retry.Policy
}

// NewLLMGenerator creates a tip generator against the given OpenAI-compatible
// base URL (e.g. "https://api.sarvam.ai/v1").
func NewLLMGenerator(apiKey, baseURL string) *LLMGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &LLMGenerator{
		client: openai.NewClientWithConfig(cfg),
		Retry:  retry.Policy{MaxAttempts: 2},
	}
}

// Generate asks the LLM for 2-3 coaching tips. It always returns between 1
// and 3 tips; LLM failures fall back to the static tip list and are never
// surfaced to the caller.
func (g *LLMGenerator) Generate(ctx context.Context, tc Context) []string {
	systemPrompt, userPrompt := BuildPrompt(tc)

	var tips []string
	err := g.Retry.Do(ctx, "tip generation", func() error {
		callCtx, cancel := context.WithTimeout(ctx, llmTimeout)
		defer cancel()

		resp, err := g.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: llmModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			Temperature: llmTemperature,
			MaxTokens:   llmMaxTokens,
		})
		if err != nil {
			return fmt.Errorf("LLM API error: %w", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("LLM returned no choices")
		}

		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		if content == "" {
			return fmt.Errorf("empty LLM response")
		}

		parsed := ParseTips(content)
		if len(parsed) == 0 {
			return fmt.Errorf("could not parse tips from LLM response")
		}
		tips = parsed
		return nil
	})
	if err != nil {
		log.Printf("[Tips] Using fallback tips after LLM failure: %v", err)
		return FallbackTips
	}

	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}

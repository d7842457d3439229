package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/saya/internal/config"
	"github.com/sandevgo/saya/internal/core"
	"github.com/sandevgo/saya/pkg/log"
)

var ErrEmptyCompletion = errors.New("empty completion")

type preset struct {
	baseURL string
	model   string
}

var presets = map[string]preset{
	config.ProviderGemini:     {baseURL: "https://generativelanguage.googleapis.com/v1beta/openai/", model: "gemini-2.0-flash"},
	config.ProviderOpenAI:     {baseURL: "https://api.openai.com/v1/", model: "gpt-4o-mini"},
	config.ProviderOpenRouter: {baseURL: "https://openrouter.ai/api/v1/", model: "google/gemini-2.0-flash-001"},
	config.ProviderAnthropic:  {baseURL: "https://api.anthropic.com/", model: "claude-3-5-haiku-latest"},
}

// NewProvider creates the generation client for the configured provider.
// Base URL and model fall back to the provider preset when unset.
func NewProvider(ctx context.Context, cfg *config.LLMConfig) (core.Generator, error) {
	p, ok := presets[cfg.GetProvider()]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}

	baseURL := cfg.GetBaseURL()
	if baseURL == "" {
		baseURL = p.baseURL
	}
	model := cfg.GetModel()
	if model == "" {
		model = p.model
	}

	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", model).
		Msg("starting llm provider")

	if cfg.GetProvider() == config.ProviderAnthropic {
		return NewAnthropic(AnthropicConfig{
			BaseURL: baseURL,
			APIKey:  cfg.GetAPIKey(),
			Model:   model,
		}), nil
	}

	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:    cfg.GetProvider(),
		BaseURL: baseURL,
		APIKey:  cfg.GetAPIKey(),
		Model:   model,
	}), nil
}

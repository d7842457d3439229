package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/saya/pkg/log"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
)

type LLMConfig struct {
	Provider string `env:"SAYA_LLM_PROVIDER" envDefault:"gemini"`
	APIKey   string `env:"SAYA_LLM_API_KEY"`
	Model    string `env:"SAYA_LLM_MODEL"`
	BaseURL  string `env:"SAYA_LLM_BASE_URL"`

	// Kept for deployments that only export the Gemini key
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c, err := ParseLLMConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

func ParseLLMConfig() (*LLMConfig, error) {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))

	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic:
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", c.Provider)
	}
	if c.GetAPIKey() == "" {
		return nil, fmt.Errorf("no api key configured for %s (set SAYA_LLM_API_KEY)", c.Provider)
	}
	return c, nil
}

func (c LLMConfig) GetProvider() string {
	return c.Provider
}

func (c LLMConfig) GetAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return c.GeminiAPIKey
}

func (c LLMConfig) GetModel() string {
	return c.Model
}

func (c LLMConfig) GetBaseURL() string {
	return c.BaseURL
}

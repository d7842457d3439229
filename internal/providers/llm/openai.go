package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sandevgo/saya/internal/core"
)

// OpenAICompatible talks to any chat-completions API: Gemini's OpenAI
// endpoint, OpenAI itself and OpenRouter.
type OpenAICompatible struct {
	name   string
	client openai.Client
	model  string
}

type OpenAICompatibleConfig struct {
	Name    string
	BaseURL string
	APIKey  string
	Model   string
}

var _ core.Generator = (*OpenAICompatible)(nil)

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", core.SayaUserAgent),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAICompatible{
		name:   cfg.Name,
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

func (o *OpenAICompatible) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", o.name, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%s: %w", o.name, ErrEmptyCompletion)
	}
	return resp.Choices[0].Message.Content, nil
}

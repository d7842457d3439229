package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sandevgo/saya/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Path string
	Auth string
	Body map[string]any
}

func newServer(t *testing.T, status int, body string, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		got.Path = r.URL.Path
		got.Auth = r.Header.Get("Authorization")
		if got.Auth == "" {
			got.Auth = r.Header.Get("X-Api-Key")
		}
		_ = json.Unmarshal(data, &got.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func firstUserContent(t *testing.T, body map[string]any) any {
	t.Helper()
	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	return msg["content"]
}

func TestOpenAICompatible_Generate(t *testing.T) {
	var got capturedRequest
	srv := newServer(t, http.StatusOK, `{
		"id": "c1", "object": "chat.completion", "created": 1, "model": "gemini-2.0-flash",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "سلام!"}}]
	}`, &got)

	g := NewOpenAICompatible(OpenAICompatibleConfig{
		Name: "gemini", BaseURL: srv.URL + "/", APIKey: "k-123", Model: "gemini-2.0-flash",
	})

	text, err := g.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "سلام!", text)

	assert.True(t, strings.HasSuffix(got.Path, "/chat/completions"))
	assert.Equal(t, "Bearer k-123", got.Auth)
	assert.Equal(t, "gemini-2.0-flash", got.Body["model"])
	assert.Equal(t, "the prompt", firstUserContent(t, got.Body))
}

func TestOpenAICompatible_EmptyChoices(t *testing.T) {
	var got capturedRequest
	srv := newServer(t, http.StatusOK, `{"id": "c1", "object": "chat.completion", "created": 1, "model": "m", "choices": []}`, &got)

	g := NewOpenAICompatible(OpenAICompatibleConfig{Name: "openai", BaseURL: srv.URL + "/", APIKey: "k", Model: "m"})
	_, err := g.Generate(context.Background(), "p")
	require.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOpenAICompatible_HTTPError(t *testing.T) {
	var got capturedRequest
	srv := newServer(t, http.StatusUnauthorized, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`, &got)

	g := NewOpenAICompatible(OpenAICompatibleConfig{Name: "gemini", BaseURL: srv.URL + "/", APIKey: "k", Model: "m"})
	_, err := g.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini")
}

func TestAnthropic_Generate(t *testing.T) {
	var got capturedRequest
	srv := newServer(t, http.StatusOK, `{
		"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-test",
		"content": [{"type": "text", "text": "hello "}, {"type": "text", "text": "there"}],
		"stop_reason": "end_turn", "usage": {"input_tokens": 3, "output_tokens": 2}
	}`, &got)

	g := NewAnthropic(AnthropicConfig{BaseURL: srv.URL + "/", APIKey: "a-key", Model: "claude-test"})

	text, err := g.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)

	assert.True(t, strings.HasSuffix(got.Path, "/v1/messages"))
	assert.Equal(t, "a-key", got.Auth)
	assert.Equal(t, "claude-test", got.Body["model"])
	assert.EqualValues(t, anthropicMaxTokens, got.Body["max_tokens"])
}

func TestAnthropic_EmptyContent(t *testing.T) {
	var got capturedRequest
	srv := newServer(t, http.StatusOK, `{
		"id": "msg_1", "type": "message", "role": "assistant", "model": "m",
		"content": [], "stop_reason": "end_turn", "usage": {"input_tokens": 1, "output_tokens": 0}
	}`, &got)

	g := NewAnthropic(AnthropicConfig{BaseURL: srv.URL + "/", APIKey: "k", Model: "m"})
	_, err := g.Generate(context.Background(), "p")
	require.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantType any
	}{
		{config.ProviderGemini, &OpenAICompatible{}},
		{config.ProviderOpenAI, &OpenAICompatible{}},
		{config.ProviderOpenRouter, &OpenAICompatible{}},
		{config.ProviderAnthropic, &Anthropic{}},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			g, err := NewProvider(context.Background(), &config.LLMConfig{Provider: tt.provider, APIKey: "k"})
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, g)
		})
	}

	t.Run("gemini preset model", func(t *testing.T) {
		g, err := NewProvider(context.Background(), &config.LLMConfig{Provider: config.ProviderGemini, APIKey: "k"})
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.0-flash", g.(*OpenAICompatible).model)
	})

	t.Run("model override", func(t *testing.T) {
		g, err := NewProvider(context.Background(), &config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "k", Model: "gpt-x"})
		require.NoError(t, err)
		assert.Equal(t, "gpt-x", g.(*OpenAICompatible).model)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewProvider(context.Background(), &config.LLMConfig{Provider: "ollama", APIKey: "k"})
		require.Error(t, err)
	})
}

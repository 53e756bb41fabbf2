package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAnthropicProvider points the provider at a local httptest server so
// the HTTP client logic can be exercised without real network calls.
func newTestAnthropicProvider(url string) *anthropicProvider {
	return &anthropicProvider{
		client:  &http.Client{Timeout: 2 * time.Second},
		baseURL: url,
		apiKey:  "test-key",
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	var capturedPath string
	var capturedBody anthropicRequest
	var capturedVersion string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&capturedBody))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"content": [{"type": "text", "text": "Hello "}, {"type": "text", "text": "there!"}],
			"usage": {"input_tokens": 3, "output_tokens": 2}
		}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	provider := newTestAnthropicProvider(server.URL)

	result, err := provider.Generate(context.Background(),
		[]Message{{Role: "user", Content: "Hi"}},
		"claude-3-haiku",
		"Be terse.",
	)
	require.NoError(t, err)

	// Text blocks are concatenated; token usage sums input and output.
	assert.Equal(t, "Hello there!", result.Content)
	require.NotNil(t, result.TokensUsed)
	assert.Equal(t, 5, *result.TokensUsed)

	assert.Equal(t, "/v1/messages", capturedPath)
	assert.Equal(t, anthropicAPIVersion, capturedVersion)
	assert.Equal(t, "claude-3-haiku", capturedBody.Model)
	assert.Equal(t, "Be terse.", capturedBody.System)
	require.Len(t, capturedBody.Messages, 1)
	assert.Equal(t, "user", capturedBody.Messages[0].Role)
}

func TestAnthropicProvider_Generate_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content": [], "usage": {"input_tokens": 0, "output_tokens": 0}}`))
	}))
	defer server.Close()

	provider := newTestAnthropicProvider(server.URL)

	_, err := provider.Generate(context.Background(), []Message{{Role: "user", Content: "Hi"}}, "claude-3-haiku", "")
	assert.ErrorContains(t, err, "empty response")
}

func TestAnthropicProvider_Generate_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"content": [{"type": "text", "text": "ok"}], "usage": {"input_tokens": 1, "output_tokens": 1}}`))
	}))
	defer server.Close()

	provider := newTestAnthropicProvider(server.URL)

	result, err := provider.Generate(context.Background(), []Message{{Role: "user", Content: "Hi"}}, "claude-3-haiku", "")
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Content)
	assert.Equal(t, 3, attempts)
}

func TestAnthropicProvider_Generate_MissingKey(t *testing.T) {
	provider := NewAnthropicProvider("")

	_, err := provider.Generate(context.Background(), []Message{{Role: "user", Content: "Hi"}}, "claude-3-haiku", "")
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")
}

func TestFactory_Get(t *testing.T) {
	factory := NewFactory(Config{OpenAIAPIKey: "k1", AnthropicAPIKey: "k2"})

	t.Run("known providers, case-insensitive", func(t *testing.T) {
		for _, name := range []string{"openai", "OpenAI", "anthropic", "Anthropic"} {
			p, err := factory.Get(name)
			require.NoError(t, err, name)
			assert.NotNil(t, p)
		}
	})

	t.Run("empty provider", func(t *testing.T) {
		_, err := factory.Get("")
		assert.ErrorContains(t, err, "does not define an AI provider")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := factory.Get("grok")
		assert.ErrorContains(t, err, "unknown provider")
	})
}

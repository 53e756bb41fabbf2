package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Message is a single turn of conversation history handed to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result is a completed (non-streaming) generation.
// TokensUsed is nil when the provider does not report usage.
type Result struct {
	Content    string
	TokensUsed *int
}

// Provider defines the interface for generating chat completions against a
// third-party AI API.
type Provider interface {
	Generate(ctx context.Context, messages []Message, model string, systemPrompt string) (*Result, error)
}

// Config carries the API keys the factory hands to providers.
type Config struct {
	OpenAIAPIKey    string
	AnthropicAPIKey string
}

// ProviderFactory resolves a provider by name. The chat service depends on
// this interface so tests can swap the real factory for a mock.
type ProviderFactory interface {
	Get(name string) (Provider, error)
}

// Factory returns the provider registered under the given name.
type Factory struct {
	providers map[string]Provider
}

// NewFactory builds the factory with one instance per supported provider.
// Providers are constructed eagerly; a missing API key only surfaces when a
// generation is attempted, so a deployment configured for a single provider
// still starts cleanly.
func NewFactory(cfg Config) *Factory {
	return &Factory{
		providers: map[string]Provider{
			"openai":    NewOpenAIProvider(cfg.OpenAIAPIKey),
			"anthropic": NewAnthropicProvider(cfg.AnthropicAPIKey),
		},
	}
}

// Get resolves a provider by name, case-insensitively.
func (f *Factory) Get(name string) (Provider, error) {
	if name == "" {
		return nil, fmt.Errorf("conversation does not define an AI provider")
	}
	p, ok := f.providers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return p, nil
}

// retry policy shared by providers: 3 attempts, exponential wait 1s..4s.
const (
	retryAttempts = 3
	retryBaseWait = 1 * time.Second
	retryMaxWait  = 4 * time.Second
)

// withRetry runs fn up to retryAttempts times, sleeping with exponential
// backoff between attempts. The last error is returned as-is.
func withRetry(ctx context.Context, fn func() error) error {
	wait := retryBaseWait
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
			wait *= 2
			if wait > retryMaxWait {
				wait = retryMaxWait
			}
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}

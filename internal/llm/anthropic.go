package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com"
	anthropicAPIVersion = "2023-06-01"
	anthropicMaxTokens  = 1024
)

type anthropicProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewAnthropicProvider creates a provider backed by Anthropic's Messages API.
func NewAnthropicProvider(apiKey string) Provider {
	return &anthropicProvider{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: anthropicBaseURL,
		apiKey:  apiKey,
	}
}

type anthropicRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (p *anthropicProvider) Generate(ctx context.Context, messages []Message, model string, systemPrompt string) (*Result, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("anthropic is not configured: set ANTHROPIC_API_KEY to enable this provider")
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     model,
		MaxTokens: anthropicMaxTokens,
		System:    systemPrompt,
		Messages:  messages,
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	var resp anthropicResponse
	err = withRetry(ctx, func() error {
		httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(body))
		if reqErr != nil {
			return fmt.Errorf("could not create http request: %w", reqErr)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-api-key", p.apiKey)
		httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

		httpResp, callErr := p.client.Do(httpReq)
		if callErr != nil {
			return fmt.Errorf("http request failed: %w", callErr)
		}
		defer httpResp.Body.Close()

		if httpResp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(httpResp.Body)
			return fmt.Errorf("api returned non-200 status %d: %s", httpResp.StatusCode, string(respBody))
		}

		resp = anthropicResponse{}
		if decErr := json.NewDecoder(httpResp.Body).Decode(&resp); decErr != nil {
			return fmt.Errorf("could not decode response: %w", decErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate response from anthropic: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return nil, fmt.Errorf("anthropic returned an empty response")
	}

	tokens := resp.Usage.InputTokens + resp.Usage.OutputTokens
	return &Result{
		Content:    sb.String(),
		TokensUsed: &tokens,
	}, nil
}

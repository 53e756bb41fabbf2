package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type openaiProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates a provider backed by OpenAI's chat completions
// API. With an empty API key the provider is constructed but every Generate
// call fails with a configuration error.
func NewOpenAIProvider(apiKey string) Provider {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &openaiProvider{client: client}
}

func (p *openaiProvider) Generate(ctx context.Context, messages []Message, model string, systemPrompt string) (*Result, error) {
	if p.client == nil {
		return nil, fmt.Errorf("openai is not configured: set OPENAI_API_KEY to enable this provider")
	}

	payload := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if systemPrompt != "" {
		payload = append(payload, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	for _, msg := range messages {
		payload = append(payload, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	var resp openai.ChatCompletionResponse
	err := withRetry(ctx, func() error {
		var callErr error
		resp, callErr = p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    model,
			Messages: payload,
		})
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate response from openai: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("openai returned an empty response")
	}

	tokens := resp.Usage.TotalTokens
	return &Result{
		Content:    resp.Choices[0].Message.Content,
		TokensUsed: &tokens,
	}, nil
}

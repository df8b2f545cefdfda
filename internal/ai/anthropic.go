package ai

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient generates long-form content (LinkedIn, Blog).
type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

var _ Provider = (*AnthropicClient)(nil)

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client: &client,
		model:  anthropic.Model("claude-sonnet-4-5"),
	}
}

func (c *AnthropicClient) Generate(ctx context.Context, req Request) (string, error) {
	systemPrompt := buildLongFormSystemPrompt(req.Platform, req.ForbiddenPhrases)
	userPrompt := buildUserPrompt(req)

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   4096,
		Temperature: anthropic.Float(0.85),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	return resp.Content[0].Text, nil
}

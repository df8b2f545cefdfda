package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/lizsears/contentcal/internal/models"
)

const summarizeInputCap = 8000

var _ Summarizer = (*AnthropicClient)(nil)

// Summarize condenses scraped research content into a 150-200 word summary of
// insights relevant to Utah real estate professionals.
func (c *AnthropicClient) Summarize(ctx context.Context, content string, category models.ResearchCategory) (string, error) {
	if len(content) > summarizeInputCap {
		content = content[:summarizeInputCap]
	}

	prompt := fmt.Sprintf(`You are summarizing research content for Utah real estate content creation.

Category: %s

Content to summarize:
%s

Extract:
1. A concise summary (150-200 words) of key insights relevant to Utah real estate professionals
2. 3-5 bullet points of actionable insights

Format as JSON:
{
  "summary": "...",
  "keyPoints": [
    { "point": "...", "relevance": "Why this matters for content" }
  ]
}`, category, content)

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 2000,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	return extractSummary(resp.Content[0].Text), nil
}

// extractSummary pulls the summary field out of the model's JSON response,
// tolerating prose or code fences around it. Falls back to the first 500
// characters of raw text.
func extractSummary(responseText string) string {
	start := strings.Index(responseText, "{")
	end := strings.LastIndex(responseText, "}")
	if start >= 0 && end > start {
		var parsed struct {
			Summary string `json:"summary"`
		}
		if err := json.Unmarshal([]byte(responseText[start:end+1]), &parsed); err == nil && parsed.Summary != "" {
			return parsed.Summary
		}
	}

	if len(responseText) > 500 {
		return responseText[:500]
	}
	return responseText
}

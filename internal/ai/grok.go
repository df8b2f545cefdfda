package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const grokBaseURL = "https://api.x.ai/v1"

// GrokClient generates X posts through the xAI OpenAI-compatible HTTP API.
type GrokClient struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

var _ Provider = (*GrokClient)(nil)

type grokRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []grokMessage `json:"messages"`
}

type grokMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type grokResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewGrokClient(apiKey string) *GrokClient {
	return &GrokClient{
		client:  resty.New().SetTimeout(60 * time.Second),
		apiKey:  apiKey,
		model:   "grok-3",
		baseURL: grokBaseURL,
	}
}

// SetBaseURL overrides the API endpoint. Used in tests.
func (g *GrokClient) SetBaseURL(url string) {
	g.baseURL = url
}

func (g *GrokClient) Generate(ctx context.Context, req Request) (string, error) {
	body := grokRequest{
		Model:       g.model,
		Temperature: 0.85,
		MaxTokens:   256,
		Messages: []grokMessage{
			{Role: "system", Content: buildXSystemPrompt(req.ForbiddenPhrases)},
			{Role: "user", Content: buildXUserPrompt(req)},
		},
	}

	var result grokResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(g.apiKey).
		SetBody(body).
		SetResult(&result).
		Post(g.baseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("grok API request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("grok API error: %s", resp.Status())
	}

	if result.Error != nil {
		return "", fmt.Errorf("grok API error: %s", result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from grok")
	}

	return result.Choices[0].Message.Content, nil
}

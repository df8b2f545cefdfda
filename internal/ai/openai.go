package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const embeddingInputCap = 8000

// OpenAIClient generates social content (IGFB, YouTube) and embeddings.
type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

var (
	_ Provider = (*OpenAIClient)(nil)
	_ Embedder = (*OpenAIClient)(nil)
)

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModelGPT4o,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	systemPrompt := buildSocialSystemPrompt(req.Platform, req.ForbiddenPhrases)
	userPrompt := buildUserPrompt(req)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Temperature: openai.Float(0.85),
		MaxTokens:   openai.Int(2048),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}

// Embed returns the text-embedding-3-small vector for the given text. Input is
// capped to keep requests within the model limit.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float64, error) {
	if len(text) > embeddingInputCap {
		text = text[:embeddingInputCap]
	}

	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModelTextEmbedding3Small,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings error: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding in response")
	}

	return resp.Data[0].Embedding, nil
}

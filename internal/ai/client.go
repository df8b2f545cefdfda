package ai

import (
	"context"

	"github.com/lizsears/contentcal/internal/models"
)

// Request carries everything a provider needs to generate one content slot.
type Request struct {
	Platform         models.Platform
	Topic            string
	ContentType      models.ContentType
	ResearchContext  string
	ForbiddenPhrases []string
}

// Provider generates content text for a single request. One blocking call, no
// retries, no streaming.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Generator is the platform-dispatching entry point the generation job uses.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Embedder produces an embedding vector for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Summarizer condenses scraped research content into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, content string, category models.ResearchCategory) (string, error)
}

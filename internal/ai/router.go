package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/lizsears/contentcal/internal/config"
	"github.com/lizsears/contentcal/internal/models"
)

// Router dispatches a generation request to the provider responsible for the
// platform: LinkedIn and Blog go to Anthropic, YouTube and IGFB to OpenAI, X
// to Grok. A provider whose API key is missing is nil and fails immediately.
type Router struct {
	anthropic Provider
	openai    Provider
	grok      Provider
}

var _ Generator = (*Router)(nil)

// NewRouter wires provider clients from configured API keys.
func NewRouter(cfg *config.Config) *Router {
	r := &Router{}
	if cfg.AnthropicAPIKey != "" {
		r.anthropic = NewAnthropicClient(cfg.AnthropicAPIKey)
	}
	if cfg.OpenAIAPIKey != "" {
		r.openai = NewOpenAIClient(cfg.OpenAIAPIKey)
	}
	if cfg.GrokAPIKey != "" {
		r.grok = NewGrokClient(cfg.GrokAPIKey)
	}
	return r
}

// NewRouterWithProviders builds a router from explicit providers. Used in tests.
func NewRouterWithProviders(anthropic, openai, grok Provider) *Router {
	return &Router{anthropic: anthropic, openai: openai, grok: grok}
}

func (r *Router) Generate(ctx context.Context, req Request) (string, error) {
	var provider Provider
	var name string

	switch req.Platform {
	case models.PlatformLinkedIn, models.PlatformBlog:
		provider, name = r.anthropic, "anthropic"
	case models.PlatformYouTube, models.PlatformIGFB:
		provider, name = r.openai, "openai"
	case models.PlatformX:
		provider, name = r.grok, "grok"
	default:
		return "", fmt.Errorf("unknown platform: %s", req.Platform)
	}

	if provider == nil {
		return "", fmt.Errorf("%s provider is not configured", name)
	}

	text, err := provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	return stripEmDashes(text), nil
}

// stripEmDashes replaces rogue em dashes the model produced despite the prompt.
func stripEmDashes(s string) string {
	return strings.ReplaceAll(s, "—", ",")
}

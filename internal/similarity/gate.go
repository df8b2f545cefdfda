package similarity

import (
	"context"
	"math"
	"sort"

	"github.com/lizsears/contentcal/internal/ai"
	"github.com/lizsears/contentcal/internal/database"
	"github.com/lizsears/contentcal/internal/logger"
	"github.com/lizsears/contentcal/internal/models"
)

const (
	// Threshold above which a topic counts as a duplicate of prior content.
	Threshold = 0.75
	// MaxMatches caps the similar items returned alongside the verdict.
	MaxMatches = 3

	contentPrefixCap = 500
	candidateLimit   = 200
)

// Match is one previously stored item that scored above the threshold.
type Match struct {
	ID         string  `json:"id"`
	Topic      string  `json:"topic"`
	Similarity float64 `json:"similarity"`
}

// Checker is the gate interface the generation job depends on.
type Checker interface {
	Check(ctx context.Context, topic, content, userID string) (bool, []Match)
}

// Gate performs embedding-nearest-neighbor checks against stored content. The
// gate is best-effort: every failure is treated as "not similar".
type Gate struct {
	embedder ai.Embedder
	contents database.ContentRepository
}

var _ Checker = (*Gate)(nil)

func NewGate(embedder ai.Embedder, contents database.ContentRepository) *Gate {
	return &Gate{embedder: embedder, contents: contents}
}

// Check embeds the topic (plus a capped content prefix) and compares it against
// the user's stored embeddings. Fails open on any error.
func (g *Gate) Check(ctx context.Context, topic, content, userID string) (bool, []Match) {
	if g.embedder == nil {
		return false, nil
	}

	if len(content) > contentPrefixCap {
		content = content[:contentPrefixCap]
	}
	text := topic
	if content != "" {
		text = topic + " " + content
	}

	query, err := g.embedder.Embed(ctx, text)
	if err != nil {
		logger.Warn().Err(err).Msg("similarity check skipped: embedding failed")
		return false, nil
	}

	stored, err := g.contents.ListEmbeddings(ctx, userID, candidateLimit)
	if err != nil {
		logger.Warn().Err(err).Msg("similarity check skipped: embedding lookup failed")
		return false, nil
	}

	var matches []Match
	for _, candidate := range stored {
		score := Cosine(query, candidate.Embedding)
		if score > Threshold {
			matches = append(matches, Match{ID: candidate.ID, Topic: candidate.Topic, Similarity: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Similarity > matches[j].Similarity })
	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}

	return len(matches) > 0, matches
}

// Cosine returns the cosine similarity of two vectors, or 0 when either is
// empty, zero, or the dimensions disagree.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// EmbeddingText builds the canonical text embedded for a content item: the
// topic plus the first 500 characters of its generated text.
func EmbeddingText(item *models.ContentItem) string {
	text := item.GeneratedText
	if len(text) > contentPrefixCap {
		text = text[:contentPrefixCap]
	}
	return item.Topic + " " + text
}

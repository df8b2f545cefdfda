package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lizsears/contentcal/internal/ai"
	"github.com/lizsears/contentcal/internal/logger"
)

// EmbeddingStore persists a computed embedding for a content item.
type EmbeddingStore interface {
	UpdateEmbedding(ctx context.Context, id string, embedding []float64) error
}

// Enqueuer is the producer-side interface the generation job uses.
type Enqueuer interface {
	Enqueue(contentID, text string) error
}

type embedTask struct {
	contentID string
	text      string
}

// EmbeddingQueue stores content embeddings in the background. Generation never
// blocks on it; failures are logged, not retried.
type EmbeddingQueue struct {
	embedder ai.Embedder
	store    EmbeddingStore
	queue    chan embedTask
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

var _ Enqueuer = (*EmbeddingQueue)(nil)

func NewEmbeddingQueue(embedder ai.Embedder, store EmbeddingStore, workers, queueSize int) *EmbeddingQueue {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &EmbeddingQueue{
		embedder: embedder,
		store:    store,
		queue:    make(chan embedTask, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the worker goroutines.
func (q *EmbeddingQueue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
}

// Stop cancels the workers and waits for in-flight tasks to finish.
func (q *EmbeddingQueue) Stop() {
	q.cancel()
	q.wg.Wait()
}

// Enqueue submits an embedding task without blocking. A full queue returns an
// error; callers treat that the same as any other best-effort failure.
func (q *EmbeddingQueue) Enqueue(contentID, text string) error {
	if q.embedder == nil {
		return fmt.Errorf("embedder is not configured")
	}
	select {
	case <-q.ctx.Done():
		return q.ctx.Err()
	default:
	}
	select {
	case q.queue <- embedTask{contentID: contentID, text: text}:
		return nil
	default:
		return fmt.Errorf("embedding queue is full")
	}
}

func (q *EmbeddingQueue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case task := <-q.queue:
			q.process(task)
		}
	}
}

func (q *EmbeddingQueue) process(task embedTask) {
	ctx, cancel := context.WithTimeout(q.ctx, 30*time.Second)
	defer cancel()

	embedding, err := q.embedder.Embed(ctx, task.text)
	if err != nil {
		logger.Warn().Err(err).Str("content_id", task.contentID).Msg("embedding generation failed")
		return
	}

	if err := q.store.UpdateEmbedding(ctx, task.contentID, embedding); err != nil {
		logger.Warn().Err(err).Str("content_id", task.contentID).Msg("embedding storage failed")
		return
	}

	logger.Debug().Str("content_id", task.contentID).Msg("embedding stored")
}

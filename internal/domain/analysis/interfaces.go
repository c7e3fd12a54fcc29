package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/infra/llm/gemini"
)

// VideoModel is the external video-understanding capability: media plus text
// instructions in, unstructured text out.
type VideoModel interface {
	GenerateContent(ctx context.Context, model string, req gemini.GenerateContentRequest) (gemini.GenerateContentResponse, error)
}

// HistoryRepository persists completed analyses.
type HistoryRepository interface {
	Insert(ctx context.Context, rec Record) error
	List(ctx context.Context, limit int) ([]Record, error)
	Get(ctx context.Context, id uuid.UUID) (Record, bool, error)
}

// ResultCache stores normalized results keyed by content hash.
type ResultCache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Save(ctx context.Context, key string, res Result, ttl time.Duration) error
}

// VideoStore archives uploaded media. Archiving is best effort and must not
// fail a request.
type VideoStore interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) error
}

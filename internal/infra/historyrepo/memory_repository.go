package historyrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/domain/analysis"
)

// MemoryRepository is an in-memory HistoryRepository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]analysis.Record
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]analysis.Record)}
}

// Insert implements analysis.HistoryRepository.
func (r *MemoryRepository) Insert(_ context.Context, rec analysis.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.ID] = rec
	return nil
}

// List returns the most recent records, newest first.
func (r *MemoryRepository) List(_ context.Context, limit int) ([]analysis.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]analysis.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Get implements analysis.HistoryRepository.
func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (analysis.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	return rec, ok, nil
}

var _ analysis.HistoryRepository = (*MemoryRepository)(nil)

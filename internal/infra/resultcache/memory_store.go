package resultcache

import (
	"context"
	"sync"
	"time"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/domain/analysis"
)

type cachedResult struct {
	payload   analysis.Result
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the result cache for
// tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]cachedResult
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[string]cachedResult)}
}

// Get implements analysis.ResultCache.
func (s *MemoryStore) Get(_ context.Context, key string) (analysis.Result, bool, error) {
	if key == "" {
		return analysis.Result{}, false, nil
	}
	s.mu.RLock()
	entry, ok := s.results[key]
	s.mu.RUnlock()
	if !ok {
		return analysis.Result{}, false, nil
	}
	if hasExpired(entry.expiresAt) {
		s.mu.Lock()
		delete(s.results, key)
		s.mu.Unlock()
		return analysis.Result{}, false, nil
	}
	return entry.payload, true, nil
}

// Save caches the result with optional TTL.
func (s *MemoryStore) Save(_ context.Context, key string, res analysis.Result, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.results[key] = cachedResult{payload: res, expiresAt: exp}
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ analysis.ResultCache = (*MemoryStore)(nil)

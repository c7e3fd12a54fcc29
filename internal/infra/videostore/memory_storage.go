package videostore

import (
	"context"
	"sync"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/domain/analysis"
)

type storedVideo struct {
	data     []byte
	mimeType string
}

// MemoryStorage keeps archived videos in process memory for tests/dev.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]storedVideo
}

// NewMemoryStorage constructs the storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]storedVideo)}
}

// Put implements analysis.VideoStore.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, mimeType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = storedVideo{
		data:     append([]byte(nil), data...),
		mimeType: mimeType,
	}
	return nil
}

// Get returns an archived video, used by tests.
func (s *MemoryStorage) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.mimeType, true
}

var _ analysis.VideoStore = (*MemoryStorage)(nil)

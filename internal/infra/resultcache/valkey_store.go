package resultcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/domain/analysis"
)

// ValkeyStore caches normalized results in a Valkey-compatible database so a
// re-uploaded video does not trigger another model call.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "vbt"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get implements analysis.ResultCache.
func (s *ValkeyStore) Get(ctx context.Context, key string) (analysis.Result, bool, error) {
	if key == "" {
		return analysis.Result{}, false, nil
	}
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return analysis.Result{}, false, nil
		}
		return analysis.Result{}, false, err
	}
	var res analysis.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return analysis.Result{}, false, err
	}
	return res, true, nil
}

// Save implements analysis.ResultCache.
func (s *ValkeyStore) Save(ctx context.Context, key string, res analysis.Result, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return s.prefix + ":result:" + key
}

var _ analysis.ResultCache = (*ValkeyStore)(nil)

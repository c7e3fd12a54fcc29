package resultcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/domain/analysis"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	res := analysis.Result{TotalReps: 5, AvgVelocity: 7.2, CoachingNotes: "solid pacing"}
	require.NoError(t, store.Save(ctx, "key-1", res, time.Minute))

	got, ok, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, res, got)
}

func TestMemoryStoreMissAndEmptyKey(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "absent")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Save(ctx, "", analysis.Result{TotalReps: 1}, time.Minute))
	_, ok, err = store.Get(ctx, "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short", analysis.Result{TotalReps: 3}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := store.Get(ctx, "short")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "pinned", analysis.Result{TotalReps: 2}, 0))

	got, ok, err := store.Get(ctx, "pinned")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, got.TotalReps)
}

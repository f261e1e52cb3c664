package geocache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-horoscope/internal/domain/geo"
)

func TestMemoryStoreRoundTripAndExpiry(t *testing.T) {
	store := NewMemoryStore(0)
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	entry := geo.Entry{Fix: geo.GeoFix{Latitude: 1, Longitude: 2, Timezone: "UTC"}, FetchedAt: now}

	require.NoError(t, store.Put(context.Background(), "paris", entry, time.Hour))

	got, ok, err := store.Get(context.Background(), "paris")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry, got)

	now = now.Add(time.Hour)
	_, ok, err = store.Get(context.Background(), "paris")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0, store.Len())
}

func TestMemoryStoreEvictsOldestWhenFull(t *testing.T) {
	store := NewMemoryStore(2)
	base := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a", geo.Entry{FetchedAt: base}, time.Hour))
	require.NoError(t, store.Put(ctx, "b", geo.Entry{FetchedAt: base.Add(time.Minute)}, time.Hour))
	require.NoError(t, store.Put(ctx, "c", geo.Entry{FetchedAt: base.Add(2 * time.Minute)}, time.Hour))

	require.Equal(t, 2, store.Len())
	_, ok, _ := store.Get(ctx, "a")
	require.False(t, ok)
	_, ok, _ = store.Get(ctx, "c")
	require.True(t, ok)
}

func TestMemoryStoreOverwriteDoesNotEvict(t *testing.T) {
	store := NewMemoryStore(1)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "a", geo.Entry{Fix: geo.GeoFix{Timezone: "UTC"}}, 0))
	require.NoError(t, store.Put(ctx, "a", geo.Entry{Fix: geo.GeoFix{Timezone: "Europe/Paris"}}, 0))

	got, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Europe/Paris", got.Fix.Timezone)
}

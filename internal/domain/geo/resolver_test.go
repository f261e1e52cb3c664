package geo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/ai-horoscope/pkg/errors"
)

func TestResolveCachesByNormalizedText(t *testing.T) {
	geocoder := &stubGeocoder{candidates: []Candidate{{Latitude: 48.8566, Longitude: 2.3522}}}
	cache := newMapCache()
	r := newResolverUnderTest(geocoder, &stubZones{name: "Europe/Paris"}, cache)

	first, err := r.Resolve(context.Background(), "  Paris, France ")
	require.NoError(t, err)
	require.Equal(t, GeoFix{Latitude: 48.8566, Longitude: 2.3522, Timezone: "Europe/Paris"}, first)
	require.Equal(t, "Paris, France", geocoder.lastQuery)

	second, err := r.Resolve(context.Background(), "paris, france")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, geocoder.calls)
	require.Contains(t, cache.entries, "paris, france")
}

func TestResolveRefetchesExpiredEntry(t *testing.T) {
	geocoder := &stubGeocoder{candidates: []Candidate{{Latitude: 1, Longitude: 2}}}
	cache := newMapCache()
	r := newResolverUnderTest(geocoder, &stubZones{name: "Etc/GMT"}, cache)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	r.now = func() time.Time { return start }
	_, err := r.Resolve(context.Background(), "Somewhere")
	require.NoError(t, err)

	r.now = func() time.Time { return start.Add(7*24*time.Hour - time.Second) }
	_, err = r.Resolve(context.Background(), "Somewhere")
	require.NoError(t, err)
	require.Equal(t, 1, geocoder.calls)

	r.now = func() time.Time { return start.Add(7 * 24 * time.Hour) }
	_, err = r.Resolve(context.Background(), "Somewhere")
	require.NoError(t, err)
	require.Equal(t, 2, geocoder.calls)
}

func TestResolveNotFound(t *testing.T) {
	r := newResolverUnderTest(&stubGeocoder{}, &stubZones{}, newMapCache())

	_, err := r.Resolve(context.Background(), "Atlantis")
	require.True(t, apperrors.IsCode(err, apperrors.CodeLocationNotFound))
}

func TestResolveUpstreamFailure(t *testing.T) {
	r := newResolverUnderTest(&stubGeocoder{err: errors.New("status=503")}, &stubZones{}, newMapCache())

	_, err := r.Resolve(context.Background(), "Paris")
	require.True(t, apperrors.IsCode(err, apperrors.CodeGeocodingError))
}

func TestResolveTimezoneFallsBackToUTC(t *testing.T) {
	geocoder := &stubGeocoder{candidates: []Candidate{{Latitude: 0, Longitude: -160}}}
	r := newResolverUnderTest(geocoder, &stubZones{err: errors.New("ocean")}, newMapCache())

	fix, err := r.Resolve(context.Background(), "Pacific")
	require.NoError(t, err)
	require.Equal(t, DefaultTimezone, fix.Timezone)
}

func TestResolveIgnoresCacheFailures(t *testing.T) {
	geocoder := &stubGeocoder{candidates: []Candidate{{Latitude: 1, Longitude: 2}}}
	cache := newMapCache()
	cache.err = errors.New("connection refused")
	r := newResolverUnderTest(geocoder, &stubZones{name: "UTC"}, cache)

	fix, err := r.Resolve(context.Background(), "Somewhere")
	require.NoError(t, err)
	require.Equal(t, 1.0, fix.Latitude)
}

func newResolverUnderTest(geocoder Geocoder, zones TimezoneFinder, cache Cache) *resolver {
	return &resolver{
		cfg:      Config{CacheTTL: 7 * 24 * time.Hour},
		geocoder: geocoder,
		zones:    zones,
		cache:    cache,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
}

type stubGeocoder struct {
	candidates []Candidate
	err        error
	calls      int
	lastQuery  string
}

func (s *stubGeocoder) Search(ctx context.Context, query string) ([]Candidate, error) {
	s.calls++
	s.lastQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

type stubZones struct {
	name string
	err  error
}

func (s *stubZones) TimezoneAt(lat, lon float64) (string, error) {
	return s.name, s.err
}

type mapCache struct {
	entries map[string]Entry
	err     error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]Entry)}
}

func (c *mapCache) Get(ctx context.Context, key string) (Entry, bool, error) {
	if c.err != nil {
		return Entry{}, false, c.err
	}
	entry, ok := c.entries[key]
	return entry, ok, nil
}

func (c *mapCache) Put(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	if c.err != nil {
		return c.err
	}
	c.entries[key] = entry
	return nil
}

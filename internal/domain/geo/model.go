package geo

import (
	"context"
	"strings"
	"time"
)

// DefaultTimezone is used whenever a location's timezone cannot be resolved.
const DefaultTimezone = "UTC"

// GeoFix is a resolved birth location.
type GeoFix struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Timezone  string  `json:"tz"`
}

// Entry is a cached GeoFix together with the moment it was fetched.
type Entry struct {
	Fix       GeoFix    `json:"fix"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Candidate is one upstream geocoding match.
type Candidate struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Geocoder searches free text locations. An empty slice means no match.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
}

// TimezoneFinder maps coordinates to an IANA zone name.
type TimezoneFinder interface {
	TimezoneAt(lat, lon float64) (string, error)
}

// Cache stores resolved locations. Implementations may drop entries after ttl;
// the resolver still checks FetchedAt itself.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, entry Entry, ttl time.Duration) error
}

// Config holds resolver knobs.
type Config struct {
	CacheTTL time.Duration
}

// CacheKey normalizes free text into the cache key.
func CacheKey(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

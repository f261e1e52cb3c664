package geo

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/ai-horoscope/pkg/errors"
)

// Resolver turns a free text birth location into coordinates and a timezone.
type Resolver interface {
	Resolve(ctx context.Context, location string) (GeoFix, error)
}

type resolver struct {
	cfg      Config
	geocoder Geocoder
	zones    TimezoneFinder
	cache    Cache
	logger   *slog.Logger
	now      func() time.Time
}

// NewResolver wires the location resolver with its cache.
func NewResolver(cfg Config, geocoder Geocoder, zones TimezoneFinder, cache Cache, logger *slog.Logger) Resolver {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 7 * 24 * time.Hour
	}
	return &resolver{
		cfg:      cfg,
		geocoder: geocoder,
		zones:    zones,
		cache:    cache,
		logger:   logger.With("component", "geo.resolver"),
		now:      time.Now,
	}
}

func (r *resolver) Resolve(ctx context.Context, location string) (GeoFix, error) {
	key := CacheKey(location)
	if key == "" {
		return GeoFix{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Both birth_time and birth_location are required", nil)
	}
	now := r.now()

	entry, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("geocode cache read failed", "error", err)
	} else if ok && now.Sub(entry.FetchedAt) < r.cfg.CacheTTL {
		return entry.Fix, nil
	}

	candidates, err := r.geocoder.Search(ctx, strings.TrimSpace(location))
	if err != nil {
		return GeoFix{}, apperrors.Wrap(apperrors.CodeGeocodingError, "Geocoding service error", err)
	}
	if len(candidates) == 0 {
		return GeoFix{}, apperrors.Wrap(apperrors.CodeLocationNotFound, "Could not geocode birth location", nil)
	}

	best := candidates[0]
	fix := GeoFix{
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
		Timezone:  r.timezoneAt(best.Latitude, best.Longitude),
	}
	if err := r.cache.Put(ctx, key, Entry{Fix: fix, FetchedAt: now}, r.cfg.CacheTTL); err != nil {
		r.logger.Warn("geocode cache write failed", "error", err)
	}
	r.logger.Info("location resolved", "location", key, "lat", fix.Latitude, "lon", fix.Longitude, "tz", fix.Timezone)
	return fix, nil
}

func (r *resolver) timezoneAt(lat, lon float64) string {
	if r.zones == nil {
		return DefaultTimezone
	}
	name, err := r.zones.TimezoneAt(lat, lon)
	if err != nil || strings.TrimSpace(name) == "" {
		if err != nil {
			r.logger.Warn("timezone lookup failed", "lat", lat, "lon", lon, "error", err)
		}
		return DefaultTimezone
	}
	return name
}

package geocache

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/ai-horoscope/internal/domain/geo"
)

const schema = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	location_key TEXT PRIMARY KEY,
	latitude     DOUBLE PRECISION NOT NULL,
	longitude    DOUBLE PRECISION NOT NULL,
	timezone     TEXT NOT NULL,
	fetched_at   TIMESTAMPTZ NOT NULL,
	expires_at   TIMESTAMPTZ
)`

// PostgresStore keeps resolved locations across restarts.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs the store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the cache table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// Get implements geo.Cache.
func (s *PostgresStore) Get(ctx context.Context, key string) (geo.Entry, bool, error) {
	var entry geo.Entry
	err := s.pool.QueryRow(ctx, `
		SELECT latitude, longitude, timezone, fetched_at
		FROM geocode_cache
		WHERE location_key = $1 AND (expires_at IS NULL OR expires_at > now())
	`, key).Scan(&entry.Fix.Latitude, &entry.Fix.Longitude, &entry.Fix.Timezone, &entry.FetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geo.Entry{}, false, nil
		}
		return geo.Entry{}, false, err
	}
	return entry, true, nil
}

// Put implements geo.Cache with an upsert.
func (s *PostgresStore) Put(ctx context.Context, key string, entry geo.Entry, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		exp := entry.FetchedAt.Add(ttl)
		expiresAt = &exp
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO geocode_cache (location_key, latitude, longitude, timezone, fetched_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (location_key) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			timezone = EXCLUDED.timezone,
			fetched_at = EXCLUDED.fetched_at,
			expires_at = EXCLUDED.expires_at
	`, key, entry.Fix.Latitude, entry.Fix.Longitude, entry.Fix.Timezone, entry.FetchedAt, expiresAt)
	return err
}

var _ geo.Cache = (*PostgresStore)(nil)

package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/ai-horoscope/internal/domain/astrology"
	"github.com/yanqian/ai-horoscope/internal/domain/astronomy"
	"github.com/yanqian/ai-horoscope/internal/domain/geo"
	"github.com/yanqian/ai-horoscope/internal/domain/horoscope"
	"github.com/yanqian/ai-horoscope/internal/infra/astronomy/openmeteo"
	"github.com/yanqian/ai-horoscope/internal/infra/config"
	"github.com/yanqian/ai-horoscope/internal/infra/ephemeris"
	"github.com/yanqian/ai-horoscope/internal/infra/geocache"
	"github.com/yanqian/ai-horoscope/internal/infra/geocode/nominatim"
	"github.com/yanqian/ai-horoscope/internal/infra/llm"
	"github.com/yanqian/ai-horoscope/internal/infra/llm/chatgpt"
	"github.com/yanqian/ai-horoscope/internal/infra/llm/gemini"
	"github.com/yanqian/ai-horoscope/internal/infra/tz"
	"github.com/yanqian/ai-horoscope/pkg/metrics"
)

const memoryCacheEntries = 1024

func provideGeoConfig(cfg *config.Config) geo.Config {
	return geo.Config{CacheTTL: cfg.Geocoding.CacheTTL}
}

func provideGeocoder(cfg *config.Config) geo.Geocoder {
	return nominatim.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent, cfg.Geocoding.Timeout)
}

func provideTimezoneFinder() geo.TimezoneFinder {
	return tz.NewFinder()
}

func provideAstronomyClient(cfg *config.Config) astronomy.Client {
	return openmeteo.NewClient(cfg.Astronomy.BaseURL, cfg.Astronomy.Timeout)
}

func provideEphemeris(cfg *config.Config) astrology.Ephemeris {
	return ephemeris.NewMeeus(cfg.Ephemeris.VSOP87Dir)
}

// provideGenerator picks the configured provider. Without a credential the
// service runs on the local fallback only.
func provideGenerator(cfg *config.Config, logger *slog.Logger) (horoscope.Generator, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, horoscopes use the local generator", "provider", cfg.LLM.Provider)
		return llm.Disabled{Provider: cfg.LLM.Provider}, nil
	}
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return gemini.NewClient(context.Background(), gemini.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
	default:
		return chatgpt.NewClient(chatgpt.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
	}
}

// provideGeoCache prefers valkey, then postgres, then process memory.
func provideGeoCache(cfg *config.Config, registry *metrics.Registry, logger *slog.Logger) geo.Cache {
	return geocache.Instrument(selectGeoCache(cfg, logger), registry)
}

func selectGeoCache(cfg *config.Config, logger *slog.Logger) geo.Cache {
	if cfg.Geocoding.Redis.Enabled {
		if store := newValkeyCache(cfg, logger); store != nil {
			return store
		}
	}
	if dsn := strings.TrimSpace(cfg.Geocoding.Postgres.DSN); dsn != "" {
		if store := newPostgresCache(cfg, dsn, logger); store != nil {
			return store
		}
	}
	logger.Info("geocode cache using memory store")
	return geocache.NewMemoryStore(memoryCacheEntries)
}

func newValkeyCache(cfg *config.Config, logger *slog.Logger) geo.Cache {
	opt, err := buildValkeyOptions(cfg.Geocoding.Redis.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back", "error", err)
		return nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back", "error", err)
		client.Close()
		return nil
	}
	logger.Info("geocode valkey cache enabled", "addr", cfg.Geocoding.Redis.Addr)
	return geocache.NewValkeyStore(client, "geocode")
}

func newPostgresCache(cfg *config.Config, dsn string, logger *slog.Logger) geo.Cache {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, falling back", "error", err)
		return nil
	}
	if cfg.Geocoding.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Geocoding.Postgres.MaxConns
	}
	if cfg.Geocoding.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Geocoding.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, falling back", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, falling back", "error", err)
		pool.Close()
		return nil
	}
	store := geocache.NewPostgresStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("postgres schema setup failed, falling back", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("geocode postgres cache enabled")
	return store
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

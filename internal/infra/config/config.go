package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Astronomy AstronomyConfig `yaml:"astronomy"`
	Ephemeris EphemerisConfig `yaml:"ephemeris"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	CORS         CORSConfig      `yaml:"cors"`
}

// CORSConfig is the cross origin policy. "*" in AllowOrigins admits every origin.
type CORSConfig struct {
	AllowOrigins  []string      `yaml:"allowOrigins"`
	AllowMethods  []string      `yaml:"allowMethods"`
	AllowHeaders  []string      `yaml:"allowHeaders"`
	ExposeHeaders []string      `yaml:"exposeHeaders"`
	MaxAge        time.Duration `yaml:"maxAge"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig selects and configures the primary horoscope generator.
// An empty APIKey is valid and disables the generator.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"maxTokens"`
}

// GeocodingConfig controls location resolution and its cache.
type GeocodingConfig struct {
	BaseURL   string         `yaml:"baseUrl"`
	UserAgent string         `yaml:"userAgent"`
	Timeout   time.Duration  `yaml:"timeout"`
	CacheTTL  time.Duration  `yaml:"cacheTtl"`
	Redis     RedisConfig    `yaml:"redis"`
	Postgres  PostgresConfig `yaml:"postgres"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// AstronomyConfig points at the daily astronomy API.
type AstronomyConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// EphemerisConfig locates the VSOP87 planetary data files.
type EphemerisConfig struct {
	VSOP87Dir string `yaml:"vsop87Dir"`
}

// Load reads configuration from a YAML file, an optional .env file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotEnv populates unset environment variables from a dotenv file.
// A missing default .env is not an error; an explicitly named one is.
func loadDotEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_CORS_METHODS"); v != "" {
		cfg.HTTP.CORS.AllowMethods = splitList(v)
	}
	if v := os.Getenv("HTTP_CORS_HEADERS"); v != "" {
		cfg.HTTP.CORS.AllowHeaders = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	// Provider specific keys are accepted for compatibility with their SDK conventions.
	switch {
	case os.Getenv("LLM_API_KEY") != "":
		cfg.LLM.APIKey = os.Getenv("LLM_API_KEY")
	case cfg.LLM.Provider == ProviderGemini && os.Getenv("GEMINI_API_KEY") != "":
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	case cfg.LLM.Provider == ProviderOpenAI && os.Getenv("OPENAI_API_KEY") != "":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxTokens = parsed
		}
	}
	if v := os.Getenv("GEOCODING_BASE_URL"); v != "" {
		cfg.Geocoding.BaseURL = v
	}
	if v := os.Getenv("GEOCODING_USER_AGENT"); v != "" {
		cfg.Geocoding.UserAgent = v
	}
	if v := os.Getenv("GEOCODING_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Geocoding.CacheTTL = parsed
		}
	}
	if v := os.Getenv("GEOCODING_REDIS_ENABLED"); v != "" {
		cfg.Geocoding.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("GEOCODING_REDIS_ADDR"); v != "" {
		cfg.Geocoding.Redis.Addr = v
	}
	if v := os.Getenv("GEOCODING_POSTGRES_DSN"); v != "" {
		cfg.Geocoding.Postgres.DSN = v
	}
	if v := os.Getenv("ASTRONOMY_BASE_URL"); v != "" {
		cfg.Astronomy.BaseURL = v
	}
	if v := os.Getenv("EPHEMERIS_VSOP87_DIR"); v != "" {
		cfg.Ephemeris.VSOP87Dir = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Supported generator providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 90 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			CORS: CORSConfig{
				AllowOrigins:  []string{"*"},
				AllowMethods:  []string{"GET", "POST", "OPTIONS"},
				AllowHeaders:  []string{"Content-Type", "Accept", "X-Requested-With", "X-Request-ID"},
				ExposeHeaders: []string{"X-Request-ID", "X-Horoscope-Source"},
				MaxAge:        10 * time.Minute,
			},
		},
		LLM: LLMConfig{
			Provider:    ProviderOpenAI,
			Model:       "gpt-4o-mini",
			Temperature: 0.85,
			MaxTokens:   260,
		},
		Geocoding: GeocodingConfig{
			BaseURL:   "https://nominatim.openstreetmap.org/search",
			UserAgent: "ai-horoscope/1.0 (+https://example.com)",
			Timeout:   10 * time.Second,
			CacheTTL:  7 * 24 * time.Hour,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Astronomy: AstronomyConfig{
			BaseURL: "https://api.open-meteo.com/v1/astronomy",
			Timeout: 10 * time.Second,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm.maxTokens must be positive")
	}
	if strings.TrimSpace(c.Geocoding.BaseURL) == "" {
		return errors.New("geocoding.baseUrl cannot be empty")
	}
	if c.Geocoding.Timeout <= 0 {
		return errors.New("geocoding.timeout must be positive")
	}
	if c.Geocoding.CacheTTL <= 0 {
		return errors.New("geocoding.cacheTtl must be positive")
	}
	if c.Geocoding.Redis.Enabled && strings.TrimSpace(c.Geocoding.Redis.Addr) == "" {
		return errors.New("geocoding.redis.addr cannot be empty when redis cache is enabled")
	}
	if strings.TrimSpace(c.Astronomy.BaseURL) == "" {
		return errors.New("astronomy.baseUrl cannot be empty")
	}
	if c.Astronomy.Timeout <= 0 {
		return errors.New("astronomy.timeout must be positive")
	}
	if len(c.HTTP.CORS.AllowOrigins) > 0 && len(c.HTTP.CORS.AllowMethods) == 0 {
		return errors.New("http.cors.allowMethods cannot be empty when origins are allowed")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}

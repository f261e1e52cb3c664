package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.Equal(t, 260, cfg.LLM.MaxTokens)
	require.Equal(t, 7*24*time.Hour, cfg.Geocoding.CacheTTL)
	require.Equal(t, 10*time.Second, cfg.Astronomy.Timeout)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9000"
llm:
  provider: gemini
  model: gemini-2.0-flash
geocoding:
  cacheTtl: 1h
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("HTTP_CORS_METHODS", "GET,POST")
	t.Setenv("GEOCODING_REDIS_ENABLED", "true")
	t.Setenv("GEOCODING_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTP.Address)
	require.Equal(t, ProviderGemini, cfg.LLM.Provider)
	require.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	require.Equal(t, "g-key", cfg.LLM.APIKey)
	require.Equal(t, time.Hour, cfg.Geocoding.CacheTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORS.AllowOrigins)
	require.Equal(t, []string{"GET", "POST"}, cfg.HTTP.CORS.AllowMethods)
	require.Contains(t, cfg.HTTP.CORS.ExposeHeaders, "X-Horoscope-Source")
	require.True(t, cfg.Geocoding.Redis.Enabled)
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("LLM_MODEL=gpt-test\n"), 0o600))

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", envPath)
	// godotenv never overrides variables that already exist, so clear it first.
	t.Setenv("LLM_MODEL", "")
	require.NoError(t, os.Unsetenv("LLM_MODEL"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gpt-test", cfg.LLM.Model)
	require.NoError(t, os.Unsetenv("LLM_MODEL"))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty address", mutate: func(c *Config) { c.HTTP.Address = "" }},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "claude" }},
		{name: "zero max tokens", mutate: func(c *Config) { c.LLM.MaxTokens = 0 }},
		{name: "redis without addr", mutate: func(c *Config) { c.Geocoding.Redis.Enabled = true }},
		{name: "zero cache ttl", mutate: func(c *Config) { c.Geocoding.CacheTTL = 0 }},
		{name: "cors without methods", mutate: func(c *Config) { c.HTTP.CORS.AllowMethods = nil }},
		{name: "zero rate", mutate: func(c *Config) { c.HTTP.RateLimit.RequestsPerMinute = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, defaultConfig().Validate())
}

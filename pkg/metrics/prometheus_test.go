package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistryExposesObservations(t *testing.T) {
	reg := NewRegistry()
	reg.ObserveRequest("/horoscope", http.MethodPost, http.StatusOK, 20*time.Millisecond)
	reg.ObserveHoroscope(SourcePrimary, TokenUsage{PromptTokens: 100, CompletionTokens: 40, TotalTokens: 140})
	reg.ObserveHoroscope(SourceFallback, TokenUsage{})
	reg.ObserveCacheLookup(CacheHit)

	recorder := httptest.NewRecorder()
	reg.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	text := string(body)
	require.Contains(t, text, `http_requests_total{method="POST",route="/horoscope",status="200"} 1`)
	require.Contains(t, text, `horoscopes_generated_total{source="fallback"} 1`)
	require.Contains(t, text, `llm_tokens_total{kind="prompt"} 100`)
	require.Contains(t, text, `geocode_cache_lookups_total{result="hit"} 1`)
}

func TestTokenUsageLogAttrs(t *testing.T) {
	attrs := TokenUsage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3}.LogAttrs()
	require.Equal(t, []any{"prompt_tokens", 1, "completion_tokens", 2, "total_tokens", 3}, attrs)
	require.True(t, TokenUsage{}.IsZero())
}

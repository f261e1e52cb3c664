package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchParsesFirstPlace(t *testing.T) {
	var (
		gotQuery string
		gotAgent string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`[{"lat":"48.8588897","lon":"2.3200410","display_name":"Paris, France"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "horoscope-test/1.0", time.Second)
	candidates, err := client.Search(context.Background(), "Paris, France")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.InDelta(t, 48.8588897, candidates[0].Latitude, 1e-9)
	require.InDelta(t, 2.3200410, candidates[0].Longitude, 1e-9)
	require.Equal(t, "Paris, France", candidates[0].DisplayName)
	require.Equal(t, "Paris, France", gotQuery)
	require.Equal(t, "horoscope-test/1.0", gotAgent)
}

func TestSearchNoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	candidates, err := NewClient(server.URL, "", time.Second).Search(context.Background(), "Atlantis")
	require.NoError(t, err)
	require.Empty(t, candidates)
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "", time.Second).Search(context.Background(), "Paris")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
}

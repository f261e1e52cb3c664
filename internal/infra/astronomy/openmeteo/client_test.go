package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchParsesDailyRecord(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"timezone": "Europe/Paris",
			"utc_offset_seconds": 7200,
			"daily": {
				"time": ["2024-06-15"],
				"sunrise": ["2024-06-15T05:46"],
				"sunset": ["2024-06-15T21:56"],
				"moonrise": [null],
				"moonset": ["2024-06-15T02:10"],
				"moon_phase": [0.31],
				"day_length": [58000.5]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	snap, err := client.Fetch(context.Background(), 48.8566, 2.3522, "2024-06-15")
	require.NoError(t, err)

	require.Equal(t, "48.8566", query.Get("latitude"))
	require.Equal(t, "2.3522", query.Get("longitude"))
	require.Equal(t, "2024-06-15", query.Get("start_date"))
	require.Equal(t, "2024-06-15", query.Get("end_date"))
	require.Equal(t, dailyFields, query.Get("daily"))
	require.Equal(t, "auto", query.Get("timezone"))

	require.NotNil(t, snap.Sunrise)
	require.True(t, snap.Sunrise.Equal(time.Date(2024, time.June, 15, 3, 46, 0, 0, time.UTC)))
	require.NotNil(t, snap.Sunset)
	require.Nil(t, snap.Moonrise)
	require.NotNil(t, snap.Moonset)
	require.NotNil(t, snap.MoonPhase)
	require.Equal(t, 0.31, *snap.MoonPhase)
	require.Equal(t, 58000.5, *snap.DayLength)
}

func TestFetchMissingMoonPhase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"utc_offset_seconds":0,"daily":{"sunrise":["2024-06-15T04:00"]}}`))
	}))
	defer server.Close()

	snap, err := NewClient(server.URL, time.Second).Fetch(context.Background(), 0, 0, "2024-06-15")
	require.NoError(t, err)
	require.Nil(t, snap.MoonPhase)
	require.NotNil(t, snap.Sunrise)
}

func TestFetchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"bad"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Fetch(context.Background(), 0, 0, "2024-06-15")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=400")
}

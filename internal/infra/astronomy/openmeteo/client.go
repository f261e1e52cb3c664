package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/ai-horoscope/internal/domain/astronomy"
)

const (
	defaultBaseURL = "https://api.open-meteo.com/v1/astronomy"
	dailyFields    = "sunrise,sunset,moonrise,moonset,moon_phase,day_length"
	localMinute    = "2006-01-02T15:04"
)

// Client fetches daily astronomy values from Open-Meteo.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves the astronomy record for one day at a location.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, date string) (astronomy.Snapshot, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("daily", dailyFields)
	params.Set("start_date", date)
	params.Set("end_date", date)
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return astronomy.Snapshot{}, fmt.Errorf("build astronomy request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return astronomy.Snapshot{}, fmt.Errorf("astronomy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return astronomy.Snapshot{}, fmt.Errorf("astronomy request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return astronomy.Snapshot{}, fmt.Errorf("decode astronomy response: %w", err)
	}
	return normalize(raw), nil
}

type apiResponse struct {
	UTCOffsetSeconds int      `json:"utc_offset_seconds"`
	Timezone         string   `json:"timezone"`
	Daily            apiDaily `json:"daily"`
}

type apiDaily struct {
	Sunrise   []*string  `json:"sunrise"`
	Sunset    []*string  `json:"sunset"`
	Moonrise  []*string  `json:"moonrise"`
	Moonset   []*string  `json:"moonset"`
	MoonPhase []*float64 `json:"moon_phase"`
	DayLength []*float64 `json:"day_length"`
}

func normalize(raw apiResponse) astronomy.Snapshot {
	loc := time.FixedZone(raw.Timezone, raw.UTCOffsetSeconds)
	return astronomy.Snapshot{
		Sunrise:   firstTime(raw.Daily.Sunrise, loc),
		Sunset:    firstTime(raw.Daily.Sunset, loc),
		Moonrise:  firstTime(raw.Daily.Moonrise, loc),
		Moonset:   firstTime(raw.Daily.Moonset, loc),
		MoonPhase: firstFloat(raw.Daily.MoonPhase),
		DayLength: firstFloat(raw.Daily.DayLength),
	}
}

func firstFloat(values []*float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

func firstTime(values []*string, loc *time.Location) *time.Time {
	if len(values) == 0 || values[0] == nil {
		return nil
	}
	value := strings.TrimSpace(*values[0])
	if value == "" {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return &ts
	}
	ts, err := time.ParseInLocation(localMinute, value, loc)
	if err != nil {
		return nil
	}
	return &ts
}

var _ astronomy.Client = (*Client)(nil)

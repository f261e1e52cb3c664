package horoscope

import (
	"github.com/yanqian/ai-horoscope/internal/domain/astrology"
	"github.com/yanqian/ai-horoscope/internal/domain/astronomy"
	"github.com/yanqian/ai-horoscope/pkg/metrics"
)

// DefaultTone applies when a request leaves the tone empty.
const DefaultTone = "funny"

// Request holds the birth profile submitted by a user.
type Request struct {
	Name          string `json:"name" form:"name"`
	Birthday      string `json:"birthday" form:"birthday"`
	BirthTime     string `json:"birth_time" form:"birth_time"`
	BirthLocation string `json:"birth_location" form:"birth_location"`
	Tone          string `json:"tone" form:"tone"`
}

// Response is the JSON payload returned for a horoscope request.
type Response struct {
	Horoscope string                `json:"horoscope"`
	Astronomy astronomy.Snapshot    `json:"astronomy"`
	Houses    []astrology.HouseCusp `json:"houses"`
}

// Result carries the response together with the values the HTML page shows.
type Result struct {
	Response
	Name     string
	Sign     string
	Natal    string
	Fallback bool
	Usage    metrics.TokenUsage
}

// Prompt is the message pair sent to the primary generator.
type Prompt struct {
	System string
	User   string
}

// Generation is the primary generator's reply.
type Generation struct {
	Text  string
	Usage metrics.TokenUsage
}

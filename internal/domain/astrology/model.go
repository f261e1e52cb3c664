package astrology

import (
	"context"
	"math"
	"strings"
	"time"
)

// Body identifies a celestial body the ephemeris can place.
type Body int

// Bodies in the fixed order used for natal summaries.
const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

var bodyNames = [...]string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Pluto"}

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return "Unknown"
	}
	return bodyNames[b]
}

// Bodies returns every supported body in summary order.
func Bodies() []Body {
	return []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}
}

// Ephemeris computes ecliptic longitudes in degrees for a UTC instant.
type Ephemeris interface {
	BodyLongitude(ctx context.Context, body Body, at time.Time) (float64, error)
	Ascendant(ctx context.Context, at time.Time, lat, lon float64) (float64, error)
	// HouseCusps returns 12 cusps, or 13 with index 0 unused.
	HouseCusps(ctx context.Context, at time.Time, lat, lon float64) ([]float64, error)
}

// Birth is the local birth moment and place.
type Birth struct {
	Date      time.Time
	Clock     string
	Latitude  float64
	Longitude float64
	Timezone  string
}

// NatalSummary is an ascendant clause followed by planet clauses.
type NatalSummary struct {
	Clauses []string
}

// ClauseSeparator joins summary clauses into a single line.
const ClauseSeparator = "; "

func (n NatalSummary) String() string {
	return strings.Join(n.Clauses, ClauseSeparator)
}

// IsEmpty reports whether no clause was computed.
func (n NatalSummary) IsEmpty() bool {
	return len(n.Clauses) == 0
}

// HouseCusp is the starting point of one house.
type HouseCusp struct {
	House  int     `json:"house"`
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}

var zodiacSigns = [12]string{
	"aries", "taurus", "gemini", "cancer", "leo", "virgo",
	"libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces",
}

// SignOf maps an ecliptic longitude in degrees onto its 30 degree sign.
func SignOf(longitude float64) string {
	return zodiacSigns[int(normalizeDegrees(longitude)/30)%12]
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

package astrology

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

const maxPlanetClauses = 6

var clockLayouts = []string{"15:04", "15:04:05"}

// Service computes natal chart details. Failures surface as absent results.
type Service interface {
	NatalSummary(ctx context.Context, birth Birth) (NatalSummary, bool)
	HouseCusps(ctx context.Context, birth Birth) []HouseCusp
}

type service struct {
	ephemeris Ephemeris
	logger    *slog.Logger
}

// NewService wires the astrology computations.
func NewService(ephemeris Ephemeris, logger *slog.Logger) Service {
	return &service{ephemeris: ephemeris, logger: logger.With("component", "astrology.service")}
}

func (s *service) NatalSummary(ctx context.Context, birth Birth) (NatalSummary, bool) {
	at, err := BirthInstant(birth)
	if err != nil {
		s.logger.Warn("natal summary skipped", "error", err)
		return NatalSummary{}, false
	}

	var clauses []string
	if asc, err := s.ephemeris.Ascendant(ctx, at, birth.Latitude, birth.Longitude); err != nil {
		s.logger.Warn("ascendant unavailable", "error", err)
	} else {
		clauses = append(clauses, fmt.Sprintf("Ascendant in %s (%.1f°)", SignOf(asc), normalizeDegrees(asc)))
	}

	planets := 0
	for _, body := range Bodies() {
		if planets == maxPlanetClauses {
			break
		}
		lon, err := s.ephemeris.BodyLongitude(ctx, body, at)
		if err != nil {
			s.logger.Debug("body position unavailable", "body", body.String(), "error", err)
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s in %s (%.1f°)", body, SignOf(lon), normalizeDegrees(lon)))
		planets++
	}

	if len(clauses) == 0 {
		return NatalSummary{}, false
	}
	return NatalSummary{Clauses: clauses}, true
}

func (s *service) HouseCusps(ctx context.Context, birth Birth) []HouseCusp {
	at, err := BirthInstant(birth)
	if err != nil {
		s.logger.Warn("house cusps skipped", "error", err)
		return []HouseCusp{}
	}
	raw, err := s.ephemeris.HouseCusps(ctx, at, birth.Latitude, birth.Longitude)
	if err != nil {
		s.logger.Warn("house cusps unavailable", "error", err)
		return []HouseCusp{}
	}
	houses, err := NumberCusps(raw)
	if err != nil {
		s.logger.Warn("house cusps rejected", "error", err)
		return []HouseCusp{}
	}
	return houses
}

// BirthInstant localises the birth date and clock in the birth timezone,
// falling back to UTC for unknown zones, and returns the UTC instant.
func BirthInstant(birth Birth) (time.Time, error) {
	if birth.Date.IsZero() {
		return time.Time{}, errors.New("birth date missing")
	}
	clock, err := parseClock(birth.Clock)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := time.LoadLocation(birth.Timezone)
	if err != nil {
		loc = time.UTC
	}
	local := time.Date(birth.Date.Year(), birth.Date.Month(), birth.Date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
	return local.UTC(), nil
}

func parseClock(value string) (time.Time, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("birth time %q is not HH:MM", value)
}

// NumberCusps labels raw cusp longitudes as houses 1..12. A 13 element array
// is treated as 1-indexed. Any other shape is rejected so callers never see
// a partial list.
func NumberCusps(cusps []float64) ([]HouseCusp, error) {
	var values []float64
	switch {
	case len(cusps) >= 13:
		values = cusps[1:13]
	case len(cusps) == 12:
		values = cusps
	default:
		return nil, fmt.Errorf("expected 12 or 13 cusps, got %d", len(cusps))
	}

	houses := make([]HouseCusp, 0, 12)
	for i, deg := range values {
		if math.IsNaN(deg) || math.IsInf(deg, 0) {
			return nil, fmt.Errorf("cusp %d is not finite", i+1)
		}
		rounded := normalizeDegrees(math.Round(deg*10) / 10)
		inSign := math.Round(math.Mod(rounded, 30)*10) / 10
		if inSign >= 30 {
			inSign = 0
		}
		houses = append(houses, HouseCusp{
			House:  i + 1,
			Sign:   SignOf(rounded),
			Degree: inSign,
		})
	}
	return houses, nil
}

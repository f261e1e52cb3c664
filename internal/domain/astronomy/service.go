package astronomy

import (
	"context"
	"log/slog"
	"time"
)

// Service exposes daily astronomy data with a guaranteed local moon phase.
type Service interface {
	Lookup(ctx context.Context, lat, lon float64, date time.Time) Snapshot
	MoonPhase() MoonPhaseReading
}

// Client fetches the upstream daily astronomy record for a location.
type Client interface {
	Fetch(ctx context.Context, lat, lon float64, date string) (Snapshot, error)
}

type service struct {
	client Client
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the astronomy lookup.
func NewService(client Client, logger *slog.Logger) Service {
	return &service{
		client: client,
		logger: logger.With("component", "astronomy.service"),
		now:    time.Now,
	}
}

// Lookup never fails: upstream errors degrade to the local moon phase only.
func (s *service) Lookup(ctx context.Context, lat, lon float64, date time.Time) Snapshot {
	snap, err := s.client.Fetch(ctx, lat, lon, date.Format(time.DateOnly))
	if err != nil {
		s.logger.Warn("astronomy fetch failed, using local moon phase", "error", err)
		return Snapshot{}.WithMoonPhase(s.MoonPhase())
	}
	if snap.MoonPhase == nil {
		snap = snap.WithMoonPhase(s.MoonPhase())
	}
	return snap
}

func (s *service) MoonPhase() MoonPhaseReading {
	return CurrentMoonPhase(s.now())
}

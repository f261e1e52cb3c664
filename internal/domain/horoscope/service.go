package horoscope

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/ai-horoscope/internal/domain/astrology"
	"github.com/yanqian/ai-horoscope/internal/domain/astronomy"
	"github.com/yanqian/ai-horoscope/internal/domain/geo"
	apperrors "github.com/yanqian/ai-horoscope/pkg/errors"
)

// Service produces horoscopes and the standalone moon phase.
type Service interface {
	Generate(ctx context.Context, req Request) (Result, error)
	MoonPhase() astronomy.MoonPhaseReading
}

// Generator is the primary text generator. Implementations report
// quota, credential and missing-key problems with the llm_unavailable code.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (Generation, error)
}

type service struct {
	resolver  geo.Resolver
	astrology astrology.Service
	astronomy astronomy.Service
	generator Generator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires the horoscope domain.
func NewService(resolver geo.Resolver, astro astrology.Service, sky astronomy.Service, generator Generator, logger *slog.Logger) Service {
	return &service{
		resolver:  resolver,
		astrology: astro,
		astronomy: sky,
		generator: generator,
		logger:    logger.With("component", "horoscope.service"),
		now:       time.Now,
	}
}

func (s *service) Generate(ctx context.Context, req Request) (Result, error) {
	tone := req.Tone
	if tone == "" {
		tone = DefaultTone
	}

	birthday, err := time.Parse(time.DateOnly, strings.TrimSpace(req.Birthday))
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Invalid birthday format", err)
	}
	sign := Sign(birthday.Month(), birthday.Day())

	if strings.TrimSpace(req.BirthTime) == "" || strings.TrimSpace(req.BirthLocation) == "" {
		return Result{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Both birth_time and birth_location are required", nil)
	}

	fix, err := s.resolver.Resolve(ctx, req.BirthLocation)
	if err != nil {
		return Result{}, err
	}

	birth := astrology.Birth{
		Date:      birthday,
		Clock:     strings.TrimSpace(req.BirthTime),
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Timezone:  fix.Timezone,
	}
	natal, houses, sky := s.lookups(ctx, birth)

	prompt := BuildPrompt(PromptInput{
		Name:          req.Name,
		Sign:          sign,
		Birthday:      birthday,
		BirthTime:     req.BirthTime,
		BirthLocation: req.BirthLocation,
		Tone:          tone,
		Natal:         natal,
		Astronomy:     sky,
	})

	result := Result{
		Response: Response{Astronomy: sky, Houses: houses},
		Name:     req.Name,
		Sign:     sign,
		Natal:    natal,
	}

	gen, err := s.generator.Generate(ctx, prompt)
	switch {
	case err == nil:
		result.Horoscope = strings.TrimSpace(gen.Text)
		result.Usage = gen.Usage
		s.logger.Info("horoscope generated", append([]any{"sign", sign}, gen.Usage.LogAttrs()...)...)
	case apperrors.IsCode(err, apperrors.CodeLLMUnavailable):
		s.logger.Warn("primary generator unavailable, using local fallback", "error", err)
		result.Horoscope = GenerateFallback(FallbackInput{
			Name:  req.Name,
			Sign:  sign,
			Tone:  tone,
			Natal: natal,
		}, s.now())
		result.Fallback = true
	default:
		return Result{}, apperrors.Wrap(apperrors.CodeLLMError, "horoscope generation failed", err)
	}
	return result, nil
}

// lookups runs the natal summary, house cusps and astronomy fetch together.
// Each one is best-effort so the group never fails.
func (s *service) lookups(ctx context.Context, birth astrology.Birth) (string, []astrology.HouseCusp, astronomy.Snapshot) {
	var (
		natal  string
		houses []astrology.HouseCusp
		sky    astronomy.Snapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if summary, ok := s.astrology.NatalSummary(gctx, birth); ok {
			natal = summary.String()
		}
		return nil
	})
	g.Go(func() error {
		houses = s.astrology.HouseCusps(gctx, birth)
		return nil
	})
	g.Go(func() error {
		sky = s.astronomy.Lookup(gctx, birth.Latitude, birth.Longitude, s.now())
		return nil
	})
	_ = g.Wait()

	if houses == nil {
		houses = []astrology.HouseCusp{}
	}
	return natal, houses, sky
}

func (s *service) MoonPhase() astronomy.MoonPhaseReading {
	return s.astronomy.MoonPhase()
}

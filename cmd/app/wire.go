//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/ai-horoscope/internal/bootstrap"
	"github.com/yanqian/ai-horoscope/internal/domain/astrology"
	"github.com/yanqian/ai-horoscope/internal/domain/astronomy"
	"github.com/yanqian/ai-horoscope/internal/domain/geo"
	"github.com/yanqian/ai-horoscope/internal/domain/horoscope"
	"github.com/yanqian/ai-horoscope/internal/infra/config"
	httpiface "github.com/yanqian/ai-horoscope/internal/interface/http"
	"github.com/yanqian/ai-horoscope/pkg/logger"
	"github.com/yanqian/ai-horoscope/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.NewRegistry,
		provideGeoConfig,
		provideGeocoder,
		provideTimezoneFinder,
		provideGeoCache,
		provideAstronomyClient,
		provideEphemeris,
		provideGenerator,
		geo.NewResolver,
		astrology.NewService,
		astronomy.NewService,
		horoscope.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}

// README: Entry point; loads config, wires providers and map services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sweetspot/internal/ai"
	"sweetspot/internal/config"
	httptransport "sweetspot/internal/http"
	"sweetspot/internal/http/handlers"
	"sweetspot/internal/infra"
	"sweetspot/internal/maps"
	"sweetspot/internal/modules/geocache"
	"sweetspot/internal/modules/trip"
	"sweetspot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.LogLevel, cfg.Development)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, img, closeProviders, err := newProviders(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("init providers", zap.Error(err))
	}
	defer closeProviders()

	enricher, err := newEnricher(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("init maps", zap.Error(err))
	}

	planner := service.NewItineraryPlanner(gen, img, enricher, service.PlannerOptions{
		Grounded:         cfg.Gemini.Mode == config.ModeGrounded,
		Strict:           cfg.Itinerary.Strict,
		ItineraryCount:   cfg.Itinerary.Count,
		Temperature:      cfg.Gemini.Temperature,
		ImageConcurrency: cfg.Itinerary.ImageConcurrency,
		Timeout:          cfg.HTTP.RequestTimeout,
	})

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Planner: planner,
		Options: handlers.Options{
			Defaults:  trip.Defaults{Days: cfg.Itinerary.DefaultDays, Currency: cfg.Itinerary.DefaultCurrency},
			PublicURL: cfg.HTTP.PublicURL,
			Timeout:   cfg.HTTP.RequestTimeout,
		},
		Logger: logger,
	})

	server := httptransport.NewServer(cfg.HTTP.Addr, router, cfg.HTTP.RequestTimeout, logger)
	if err := server.Run(ctx); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}

// newProviders picks the text and image collaborators for the configured
// mode. The returned image generator is nil when images are disabled.
func newProviders(ctx context.Context, cfg config.Config, logger *zap.Logger) (ai.Generator, ai.ImageGenerator, func(), error) {
	noop := func() {}

	if cfg.EnableMocks {
		logger.Warn("using mock providers")
		mock := ai.NewMockProvider()
		var img ai.ImageGenerator
		if cfg.Itinerary.ImagesEnabled {
			img = mock
		}
		return mock, img, noop, nil
	}

	var (
		text     ai.Generator
		imageGen ai.ImageGenerator
		closer   = noop
	)

	needGrounded := cfg.Gemini.Mode == config.ModeGrounded || cfg.Itinerary.ImagesEnabled
	if needGrounded {
		grounded, err := ai.NewGroundedProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.ImageModel)
		if err != nil {
			return nil, nil, noop, err
		}
		text = grounded
		if cfg.Itinerary.ImagesEnabled {
			imageGen = grounded
		}
	}

	if cfg.Gemini.Mode == config.ModeStructured {
		structured, err := ai.NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Itinerary.Strict)
		if err != nil {
			return nil, nil, noop, err
		}
		text = structured
		closer = structured.Close
	}

	logger.Info("providers ready",
		zap.String("mode", cfg.Gemini.Mode),
		zap.String("model", cfg.Gemini.Model),
		zap.Bool("images", imageGen != nil),
	)

	retrying := ai.NewRetrying(text, imageGen, &cfg.Retry)
	if imageGen == nil {
		return retrying, nil, closer, nil
	}
	return retrying, retrying, closer, nil
}

// newEnricher always produces map links; coordinates and walking legs need
// MAPS_API_KEY.
func newEnricher(ctx context.Context, cfg config.Config, logger *zap.Logger) (*maps.Enricher, error) {
	if cfg.Maps.APIKey == "" {
		logger.Info("MAPS_API_KEY not set, stops get search links only")
		return maps.NewEnricher(nil, nil), nil
	}

	var cache maps.LocationCache
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, err
		}
		cache = geocache.NewStore(rdb, cfg.Maps.CacheTTL)
	} else {
		cache = geocache.NewMemoryStore(cfg.Maps.CacheTTL)
	}

	loader := maps.NewLoader(cfg.Maps.APIKey)
	places := maps.NewPlacesService(loader, cache, cfg.Maps.Region)
	if !cfg.Maps.WalkingLegs {
		return maps.NewEnricher(places, nil), nil
	}
	return maps.NewEnricher(places, maps.NewRouteService(loader, cfg.Maps.Region)), nil
}

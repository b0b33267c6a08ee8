package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shop-directory/internal/api/http"
	"github.com/spec-kit/shop-directory/internal/api/http/handlers"
	"github.com/spec-kit/shop-directory/internal/auth"
	"github.com/spec-kit/shop-directory/internal/config"
	"github.com/spec-kit/shop-directory/internal/events"
	"github.com/spec-kit/shop-directory/internal/geocode"
	"github.com/spec-kit/shop-directory/internal/observability"
	"github.com/spec-kit/shop-directory/internal/persistence"
	"github.com/spec-kit/shop-directory/internal/repository"
	"github.com/spec-kit/shop-directory/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var shopRepo repository.ShopRepository
	var pgPinger, redisPinger handlers.Pinger
	if pg.Enabled() {
		shopRepo = repository.NewShopRepository(pg.PoolHandle())
		pgPinger = pg
	} else {
		shopRepo = repository.NewMemoryShopRepository()
	}
	if redis.Handle() != nil {
		redisPinger = redis
	}

	resolver := newResolver(cfg.Geocoder, logger)

	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger).RegisterHandlers()

	shopService := service.NewShopService(*cfg, service.ShopDependencies{
		ShopRepo:   shopRepo,
		Resolver:   resolver,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authMiddleware := auth.NewAuthMiddleware(shopService.TokenManager())

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareOptions{
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, handlers.HealthDependencies{
			Postgres: pgPinger,
			Redis:    redisPinger,
			Metrics:  metrics,
		}),
		Shops:          handlers.NewShopsHandler(shopService),
		AuthMiddleware: authMiddleware,
		LoginLimiter: httptransport.RateLimit(redis.Handle(), logger, httptransport.RateLimitOptions{
			Prefix: "rl:login",
			Max:    cfg.RateLimit.LoginMax,
			Window: cfg.RateLimit.LoginWindow(),
		}),
	})

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func newResolver(cfg config.GeocoderConfig, logger *zap.Logger) geocode.Resolver {
	if cfg.APIKey == "" {
		logger.Warn("GEOCODER_API_KEY not provided; registrations must include coordinates")
		return geocode.Disabled{}
	}
	resolver, err := geocode.NewGoogleResolver(geocode.GoogleOptions{
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout(),
	})
	if err != nil {
		logger.Fatal("failed to init geocoder", zap.Error(err))
	}
	return resolver
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

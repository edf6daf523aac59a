package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/drinks-service/internal/api/http"
	"github.com/spec-kit/drinks-service/internal/api/http/handlers"
	"github.com/spec-kit/drinks-service/internal/auth"
	"github.com/spec-kit/drinks-service/internal/cache"
	"github.com/spec-kit/drinks-service/internal/config"
	"github.com/spec-kit/drinks-service/internal/events"
	"github.com/spec-kit/drinks-service/internal/observability"
	"github.com/spec-kit/drinks-service/internal/persistence"
	"github.com/spec-kit/drinks-service/internal/repository"
	"github.com/spec-kit/drinks-service/internal/service"
	"github.com/spec-kit/drinks-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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

	drinkRepo := repository.NewDrinkRepository(pg.PoolHandle())
	menuCache := cache.NewMenuCache(redis.Client, cfg.Cache.MenuTTL(), logger)
	dispatcher := events.NewInMemoryDispatcher()
	drinkService := service.NewDrinkService(drinkRepo, dispatcher, logger)

	worker.StartMenuWorker(dispatcher, menuCache, logger)

	verifier := auth.NewVerifier(cfg.Auth.Issuer, cfg.Auth.Audience)
	keySource := auth.NewJWKSClient(cfg.Auth.JWKSURL, cfg.Auth.JWKSRefreshInterval(), nil)
	authorizer := auth.NewAuthorizer(verifier, keySource)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	drinksHandler := handlers.NewDrinksHandler(drinkService, menuCache)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     healthHandler,
		Drinks:     drinksHandler,
		Authorizer: authorizer,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

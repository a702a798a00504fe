package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/podger/valuation/internal/adapter/http"
	"github.com/podger/valuation/internal/adapter/http/handler"
	redisRepo "github.com/podger/valuation/internal/adapter/repository/redis"
	"github.com/podger/valuation/internal/infrastructure/config"
	"github.com/podger/valuation/internal/infrastructure/idgen"
	"github.com/podger/valuation/internal/infrastructure/logger"
	"github.com/podger/valuation/internal/infrastructure/metrics"
	"github.com/podger/valuation/internal/infrastructure/redis"
	"github.com/podger/valuation/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	m := metrics.New()

	// Redis is optional; without it requests are simply not deduplicated.
	var idempotencyStore usecase.IdempotencyStore
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		appLogger.Info().Msg("connected to redis")

		idempotencyStore = redisRepo.NewIdempotencyStore(client, m)
		redisClient = client
	}

	idGen := idgen.NewULIDGenerator()
	valuationUC := usecase.NewValuationUseCase(idGen, m, cfg.MaxEntries)

	valuationHandler := handler.NewValuationHandler(valuationUC)
	healthHandler := handler.NewHealthHandler(redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ValuationHandler: valuationHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Metrics:          m,
		Logger:           appLogger,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}

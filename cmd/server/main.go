package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evalpoint/evalpoint-backend/internal/config"
	"github.com/evalpoint/evalpoint-backend/internal/database"
	"github.com/evalpoint/evalpoint-backend/internal/handler"
	"github.com/evalpoint/evalpoint-backend/internal/logger"
	"github.com/evalpoint/evalpoint-backend/internal/middleware"
	"github.com/evalpoint/evalpoint-backend/internal/repository"
	"github.com/evalpoint/evalpoint-backend/internal/router"
	"github.com/evalpoint/evalpoint-backend/internal/service"
	"github.com/evalpoint/evalpoint-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting EvalPoint Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to MongoDB ────────────────────────────────────────────
	client, err := database.NewMongoClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	db := client.Database(cfg.MongoDB)

	// ─── Initialize Repository ─────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to provision user indexes")
	}

	// ─── Rate-Limit Counter Store ──────────────────────────────────────
	// Redis when configured (shared across instances), process memory
	// otherwise.
	var counters middleware.CounterStore
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		counters = middleware.NewRedisCounterStore(rdb)
	} else {
		counters = middleware.NewMemoryCounterStore()
		log.Info().Msg("REDIS_URL not set, using in-process rate-limit counters")
	}

	// ─── Initialize Services ───────────────────────────────────────────
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.Fatal().Err(err).Msg("Token service configuration error")
	}
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, hasher, tokens, log)

	// ─── Setup Router ──────────────────────────────────────────────────
	authHandler := handler.NewAuthHandler(authService, log)
	r := router.SetupRouter(authHandler, tokens, userRepo, counters, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

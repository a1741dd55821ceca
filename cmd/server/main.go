// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"recruiterpro/internal/api"
	"recruiterpro/internal/auth"
	"recruiterpro/internal/common/config"
	"recruiterpro/internal/common/database"
	"recruiterpro/internal/common/logger"
	"recruiterpro/internal/common/observability"
	"recruiterpro/internal/extractor"
	"recruiterpro/internal/feedback"
	"recruiterpro/internal/scoring"
	"recruiterpro/internal/storage"
	"recruiterpro/internal/wallet"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("driver", cfg.Database.Driver),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init storage ---
	var store storage.Store
	switch cfg.Database.Driver {
	case "memory":
		store = storage.NewMemoryStore()
		zapLog.Info("Using in-memory storage")
	default:
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		if err := storage.EnsureSchema(ctx, pg); err != nil {
			zapLog.Fatal("schema setup failed", zap.Error(err))
		}
		store = storage.NewPostgresStore(pg.GetDB(), log)
	}

	// --- Wire services ---
	scorer := scoring.ForName(cfg.Scoring.Strategy, time.Now().UnixNano())
	ext := extractor.New(scorer, log)

	walletSvc := wallet.NewService(store, redis, log)
	sessions := auth.NewSessionStore(redis, cfg.Session.SessionTTL())
	authSvc := auth.NewService(store, sessions, walletSvc, cfg.Rewards.WelcomeBonus, log)
	feedbackSvc := feedback.NewService(store, walletSvc, cfg.Rewards.FeedbackCoins, log)

	if cfg.App.Environment == "development" && cfg.Database.Driver == "memory" {
		seedDemoUser(ctx, authSvc, zapLog)
	}

	server := api.NewServer(cfg, api.Dependencies{
		Auth:      authSvc,
		Extractor: ext,
		Feedback:  feedbackSvc,
		Wallet:    walletSvc,
		Store:     store,
		Logger:    log,
		Obs:       obs,
	})

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		zapLog.Error("server stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("server stopped cleanly")
}

// seedDemoUser registers a throwaway account so the extension can be pointed
// at a fresh dev server without signing up first.
func seedDemoUser(ctx context.Context, authSvc *auth.Service, log *zap.Logger) {
	if _, _, err := authSvc.Register(ctx, "demo", "demo123"); err != nil {
		log.Warn("demo user seed failed", zap.Error(err))
		return
	}
	log.Info("demo user seeded", zap.String("username", "demo"))
}

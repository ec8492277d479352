package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mood-journal/mood-journal/cmd/moodjournal/cli"
	"github.com/mood-journal/mood-journal/internal/app"
	"github.com/mood-journal/mood-journal/internal/auth"
	"github.com/mood-journal/mood-journal/internal/journal"
	"github.com/mood-journal/mood-journal/internal/mood"
	"github.com/mood-journal/mood-journal/internal/observability"
	"github.com/mood-journal/mood-journal/internal/platform/cache"
	"github.com/mood-journal/mood-journal/internal/platform/db"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "jobs" {
		os.Exit(cli.RunJobs(os.Args[2:]))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// The series cache degrades to building on every request.
		logger.Warn("connect redis", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	metrics := observability.NewMetrics()

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, tokenManager)
	authHandler := auth.NewHandler(logger, authService)

	classifier := observability.InstrumentClassifier(
		mood.NewClient(cfg.ClassifierURL, cfg.ClassifierTimeout, logger),
		metrics,
	)
	seriesCache := mood.NewSeriesCache(redisClient, cfg.SeriesCacheTTL)

	journalRepo := journal.NewRepository(dbpool)
	journalService := journal.NewService(journalRepo, classifier, seriesCache, logger)
	journalHandler := journal.NewHandler(logger, journalService)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		TokenManager:   tokenManager,
		AuthHandler:    authHandler,
		JournalHandler: journalHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

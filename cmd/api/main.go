// Package main is the entry point for the personal finance API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finance-tracker/personal-finance/config"
	"github.com/finance-tracker/personal-finance/internal/infra/cache"
	"github.com/finance-tracker/personal-finance/internal/infra/db"
	"github.com/finance-tracker/personal-finance/internal/infra/dependency"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/job"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	})))

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting personal finance API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	if cfg.Database.RunMigrations {
		if err := db.RunMigrations(cfg.Database.URL); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
	}

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	redisConn, err := cache.NewRedisConnection(&cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisConn.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}()

	injector, err := dependency.NewInjector(
		cfg,
		database.DB(),
		redisConn.Client(),
		database.HealthCheck,
		redisConn.HealthCheck,
		dependency.Overrides{},
	)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	var background sync.WaitGroup

	if cfg.Email.WorkerEnabled {
		background.Add(1)
		go func() {
			defer background.Done()
			injector.EmailWorker.Start(bgCtx)
		}()
	}

	var scheduler *job.Scheduler
	if cfg.Review.JobEnabled {
		scheduler = job.NewScheduler()
		if err := scheduler.Register(cfg.Review.JobSchedule, injector.ReviewJob.Run); err != nil {
			slog.Error("Failed to schedule monthly review job", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		slog.Info("Monthly review job scheduled", "schedule", cfg.Review.JobSchedule)
	}

	engine := injector.Router.Setup(cfg.Server.Environment, cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	if scheduler != nil {
		scheduler.Stop(ctx)
	}
	stopBackground()
	background.Wait()

	slog.Info("Server exited properly")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opsdesk/helpdesk-engine/internal/api"
	"github.com/opsdesk/helpdesk-engine/internal/config"
	"github.com/opsdesk/helpdesk-engine/internal/leaderboard"
	"github.com/opsdesk/helpdesk-engine/internal/notify"
	"github.com/opsdesk/helpdesk-engine/internal/rules"
	"github.com/opsdesk/helpdesk-engine/internal/slamonitor"
	"github.com/opsdesk/helpdesk-engine/internal/storage"
	"github.com/opsdesk/helpdesk-engine/internal/workflow"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting helpdesk-engine",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Run database migrations
	slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
	if err := storage.MigrateFromDSN(initCtx, cfg.Database.DSN, cfg.Database.MigrationsDir); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize database repository
	repo, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: int32(cfg.Database.MaxOpenConns),
		MaxIdleConns: int32(cfg.Database.MaxIdleConns),
	})
	if err != nil {
		slog.Error("failed to create database repository", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected successfully")

	// Load decision rules (defaults apply when the directory is missing)
	ruleLoader := rules.NewLoader()
	if err := ruleLoader.LoadFromDir(cfg.Rules.Dir); err != nil {
		slog.Warn("failed to load rules from dir", "dir", cfg.Rules.Dir, "error", err)
	}

	// Leaderboard cache is optional: the engine falls back to the
	// database when Redis is unavailable.
	var board *leaderboard.Cache
	board, err = leaderboard.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("leaderboard cache unavailable, using database fallback", "error", err)
		board = nil
	} else {
		if accounts, err := repo.ListAccounts(initCtx); err == nil {
			if err := board.Sync(initCtx, accounts); err != nil {
				slog.Warn("failed to sync leaderboard", "error", err)
			}
		}
	}

	// Escalation notification channels
	notices := notify.DefaultRegistry()

	// Workflow engine
	engine := workflow.NewEngine(repo, ruleLoader, cfg.Decision, board, notices)

	// SLA alert stream and monitor worker
	alertHub := api.NewAlertHub()
	monitor := slamonitor.New(engine, alertHub, cfg.Monitor.Interval)
	monitor.Start()

	// Setup HTTP server
	server := api.NewServer(cfg.Server, cfg.Decision, engine, repo, alertHub)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Stop the background worker first so no scan races shutdown
	monitor.Stop()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if board != nil {
		if err := board.Close(); err != nil {
			slog.Error("leaderboard close error", "error", err)
		}
	}

	if err := repo.Close(); err != nil {
		slog.Error("repository close error", "error", err)
	}

	slog.Info("helpdesk-engine stopped")
}

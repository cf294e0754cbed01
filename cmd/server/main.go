// Package main is the entry point for the textile reports API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"textile/internal/config"
	"textile/internal/domain/reports"
	"textile/internal/infrastructure/cache"
	v1 "textile/internal/infrastructure/http/v1"
	"textile/internal/infrastructure/storage/postgres"
	"textile/internal/infrastructure/storage/postgres/report_repo"
	"textile/internal/infrastructure/storage/postgres/settings_repo"
	"textile/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting textile reports server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	postgres.LogPoolStats(ctx, pool)

	txManager := postgres.NewTxManager(pool, cfg.Database.StatementTimeout)

	// --- Global defaults, optionally cached in Redis ---
	var defaults reports.DefaultsReader = settings_repo.NewDefaultsRepo(txManager)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warnw("redis unavailable, defaults cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer rdb.Close()
			defaults = cache.NewDefaultsCache(defaults, rdb, cfg.Redis.DefaultsTTL)
			log.Infow("defaults cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.DefaultsTTL)
		}
	}

	// --- Reports ---
	reportsService := reports.NewService(
		report_repo.NewReportRepo(txManager),
		reports.NewDefaultsPreferences(defaults, cfg.HideItemNameColumns),
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		DB:             pool,
		Logger:         log,
		ReportsService: reportsService,
		Development:    cfg.Development(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/buddybudget/networth-backend/internal/adapter/httpapi"
	"github.com/buddybudget/networth-backend/internal/adapter/rates"
	"github.com/buddybudget/networth-backend/internal/adapter/rates/exchangerateapi"
	"github.com/buddybudget/networth-backend/internal/adapter/repository/postgres"
	"github.com/buddybudget/networth-backend/internal/config"
	"github.com/buddybudget/networth-backend/internal/domain"
	"github.com/buddybudget/networth-backend/internal/usecase/converter"
	"github.com/buddybudget/networth-backend/internal/usecase/ledger"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Database
	db, err := postgres.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	// 2. Exchange rates: HTTP provider behind a cache
	var rateCache rates.Cache
	if cfg.RedisAddr != "" {
		rateCache = rates.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "networth:")
		logger.Info("using redis rate cache", "addr", cfg.RedisAddr)
	} else {
		rateCache = rates.NewMemoryCache()
		logger.Info("using in-memory rate cache")
	}

	var rateProvider domain.RateProvider = exchangerateapi.New(
		cfg.RateAPIURL, cfg.RateAPIKey, cfg.RateHTTPTimeout, logger)
	rateProvider = rates.NewCachedProvider(rateProvider, rateCache, cfg.RateCacheTTL, logger)

	// 3. Services
	store := postgres.NewStore(db)
	conv := converter.NewService(rateProvider, logger)
	ledgerService := ledger.NewService(store, conv, logger)

	// 4. HTTP server
	server := httpapi.New(ledgerService, cfg.APIToken, logger)

	go func() {
		logger.Info("http server listening", "addr", cfg.ListenAddr)
		if err := server.Listen(cfg.ListenAddr); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(server, logger)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *httpapi.Server, logger *slog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", "signal", sig.String())

	if err := server.Shutdown(); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}

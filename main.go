package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"commerce-api/internal/api"
	"commerce-api/internal/auth"
	"commerce-api/internal/catalog"
	"commerce-api/internal/config"
	"commerce-api/internal/db"
	"commerce-api/internal/featureflags"
	"commerce-api/internal/logger"
	"commerce-api/internal/orders"
	"commerce-api/internal/telemetry"
)

func main() {
	// 1) Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	// 2) Feature flags init (non-fatal)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := featureflags.Init(ctx, cfg.RolloutKey, cfg.LogLevel); err != nil {
		logger.Warnf("feature flags init warning: %v", err)
	} else {
		logger.Infof("feature flags ready: offline=%v, logLevel=%s", featureflags.Offline(), featureflags.LogLevel())
	}
	defer featureflags.Shutdown()

	// 2a) Levelled logger follows the flag
	logger.SetLevel(featureflags.LogLevel())
	logger.Infof("log level set to %s", logger.GetLevel())
	go watchLogLevel()

	// 3) Tracing
	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		logger.Errorf("telemetry init failed: %v", err)
		os.Exit(1)
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warnf("telemetry shutdown: %v", err)
		}
	}()

	// 4) Token verification
	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		logger.Errorf("auth init failed: %v", err)
		os.Exit(1)
	}

	// 5) Storage
	catalogRepo, ordersRepo, ready, closeDB, err := newRepositories(cfg.DB)
	if err != nil {
		logger.Errorf("database init failed: %v", err)
		os.Exit(1)
	}
	defer closeDB()

	// 6) Router
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler := api.NewRouter(api.Deps{
		Catalog:        catalog.NewService(catalogRepo),
		Orders:         orders.NewService(ordersRepo),
		Verifier:       verifier,
		Ready:          ready,
		Offline:        featureflags.Offline,
		Registry:       registry,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	s := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           telemetry.Handler(handler, "commerce-api"),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("commerce-api listening on %s (storage=%s)", s.Addr, cfg.DB.Storage)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down server...")

	sctx, scancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer scancel()
	if err := s.Shutdown(sctx); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Infof("server stopped")
}

// watchLogLevel polls the logLevel flag and applies changes.
func watchLogLevel() {
	prev := featureflags.LogLevel()
	for {
		time.Sleep(5 * time.Second)
		cur := featureflags.LogLevel()
		if cur != prev {
			logger.SetLevel(cur)
			logger.Infof("log level changed to %s", logger.GetLevel())
			prev = cur
		}
	}
}

func newVerifier(cfg config.AuthConfig) (auth.Verifier, error) {
	if cfg.JWTPublicKeyFile != "" {
		return auth.NewRSAVerifierFromFile(cfg.JWTPublicKeyFile)
	}
	return auth.NewHMACVerifier([]byte(cfg.JWTSecret)), nil
}

func newRepositories(cfg config.DBConfig) (catalog.Repository, orders.Repository, func(context.Context) error, func(), error) {
	if cfg.Storage == config.StorageMemory {
		logger.Infof("using in-memory storage seeded with fixtures")
		return catalog.NewMemoryStore(), orders.NewMemoryStore(), nil, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sqlDB, err := db.Init(ctx, cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := db.Migrate(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, nil, nil, nil, err
	}
	if cfg.Seed {
		if err := db.Seed(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, nil, nil, err
		}
	}
	closeDB := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warnf("close database: %v", err)
		}
	}
	return catalog.NewStore(sqlDB), orders.NewStore(sqlDB), pinger(sqlDB), closeDB, nil
}

func pinger(sqlDB *sql.DB) func(context.Context) error {
	return sqlDB.PingContext
}

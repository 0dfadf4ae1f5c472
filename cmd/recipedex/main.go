package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recipedex/internal/config"
	"github.com/kailas-cloud/recipedex/internal/db"
	"github.com/kailas-cloud/recipedex/internal/db/breaker"
	dbRedis "github.com/kailas-cloud/recipedex/internal/db/redis"
	logpkg "github.com/kailas-cloud/recipedex/internal/logger"
	"github.com/kailas-cloud/recipedex/internal/metrics"
	reciperepo "github.com/kailas-cloud/recipedex/internal/repository/recipe"
	chiTransport "github.com/kailas-cloud/recipedex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/recipedex/internal/usecase/health"
	recipeuc "github.com/kailas-cloud/recipedex/internal/usecase/recipe"
	"github.com/kailas-cloud/recipedex/internal/version"
)

func main() {
	printSchema := flag.Bool("schema", false, "print the recipes index schema as JSON and exit")
	printVersion := flag.Bool("version", false, "print the build version and exit")
	keyPrefix := flag.String("key-prefix", "recipes:", "key prefix used by -schema")
	flag.Parse()

	if *printVersion {
		fmt.Println(version.String())
		return
	}

	if *printSchema {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(chiTransport.BuildSchema(*keyPrefix)); err != nil {
			fmt.Fprintln(os.Stderr, "failed to encode schema:", err)
			os.Exit(1)
		}
		return
	}

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting recipedex API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Valkey and Redis speak the same protocol; one rueidis driver serves both.
	base, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:        cfg.Database.Addrs,
		Username:     cfg.Database.Username,
		Password:     cfg.Database.Password,
		DB:           cfg.Database.DB,
		DialTimeout:  time.Duration(cfg.Database.DialTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Database.WriteTimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}

	metrics.RegisterIndexingMetrics()

	var store db.Store = base
	var breakerReporter healthuc.BreakerReporter
	if cfg.Breaker.IsEnabled() {
		guarded := breaker.New(base, breaker.Config{
			Name:                "document-store",
			MaxRequests:         cfg.Breaker.MaxRequests,
			Interval:            time.Duration(cfg.Breaker.IntervalSec) * time.Second,
			Timeout:             time.Duration(cfg.Breaker.TimeoutSec) * time.Second,
			ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
		}, logger)
		store = guarded
		breakerReporter = guarded
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	recipeRepo := reciperepo.New(store, cfg.Storage.KeyPrefix)
	recipeSvc := recipeuc.New(recipeRepo).WithMaxBatchSize(cfg.Index.MaxBatchSize)
	healthSvc := healthuc.New(store, breakerReporter)

	server := chiTransport.NewServer(recipeSvc, healthSvc, chiTransport.BuildSchema(cfg.Storage.KeyPrefix), logger).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)
	r := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

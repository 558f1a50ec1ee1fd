package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docfind/internal/config"
	dbRedis "github.com/kailas-cloud/docfind/internal/db/redis"
	"github.com/kailas-cloud/docfind/internal/domain/search/fuzzy"
	"github.com/kailas-cloud/docfind/internal/domain/search/score"
	logpkg "github.com/kailas-cloud/docfind/internal/logger"
	"github.com/kailas-cloud/docfind/internal/metrics"
	documentrepo "github.com/kailas-cloud/docfind/internal/repository/document"
	historyrepo "github.com/kailas-cloud/docfind/internal/repository/history"
	chiTransport "github.com/kailas-cloud/docfind/internal/transport/chi"
	documentuc "github.com/kailas-cloud/docfind/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docfind/internal/usecase/health"
	searchuc "github.com/kailas-cloud/docfind/internal/usecase/search"
	"github.com/kailas-cloud/docfind/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Encoding,
		Service:  "docfind",
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docfind API server",
		zap.Object("build", version.Get()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Valkey speaks the Redis protocol, so both drivers share the rueidis store.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:       cfg.Database.Addrs,
		Username:    cfg.Database.Username,
		Password:    cfg.Database.Password,
		DB:          cfg.Database.DB,
		DialTimeout: cfg.Database.DialTimeout(),
		ClientName:  "docfind",
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Collectors are registered explicitly, never from init()
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()

	// Repositories
	docRepo := documentrepo.New(store, cfg.Storage.KeyPrefix)
	indexed, err := docRepo.Reindex(ctx)
	if err != nil {
		logger.Fatal("Failed to rebuild document index", zap.Error(err))
	}
	logger.Info("Document index ready", zap.Int("documents", indexed))
	historyRepo := historyrepo.New(store, cfg.Storage.KeyPrefix, cfg.Search.History.MaxEntries, cfg.HistoryTTL())

	// Use case services
	w := cfg.Search.Weights
	f := cfg.Search.Fuzzy
	docSvc := documentuc.New(docRepo).
		WithMaxImportBatch(cfg.Search.MaxImportBatch)
	searchSvc := searchuc.New(docRepo, historyRepo).
		WithPagination(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize).
		WithScoring(
			score.Weights{Title: w.Title, Tag: w.Tag, Body: w.Body, PhraseBoost: w.PhraseBoost},
			fuzzy.Policy{ExactMaxLen: f.ExactMaxLen, OneEditMaxLen: f.OneEditMaxLen, MaxEdits: f.MaxEdits},
		).
		WithSuggestionLimit(cfg.Search.SuggestionLimit)
	healthSvc := healthuc.New(store, docRepo).WithHistory(historyRepo)

	server := chiTransport.NewServer(docSvc, searchSvc, healthSvc, logger)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

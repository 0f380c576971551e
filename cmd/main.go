package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angeloszaimis/question-paper/config"
	"github.com/angeloszaimis/question-paper/internal/allocator"
	"github.com/angeloszaimis/question-paper/internal/handler"
	"github.com/angeloszaimis/question-paper/internal/httpserver"
	"github.com/angeloszaimis/question-paper/internal/metrics"
	"github.com/angeloszaimis/question-paper/internal/question"
	"github.com/angeloszaimis/question-paper/internal/sampler"
	"github.com/angeloszaimis/question-paper/pkg/logger"
)

const serviceName = "question-paper"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:       cfg.Logging.Level,
		AddSource:   cfg.Logging.AddSource,
		Environment: cfg.Server.Environment,
		Service:     serviceName,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := loadPool(cfg.Pool.Path, log)
	if err != nil {
		log.Error("Failed to load question pool", slog.String("path", cfg.Pool.Path), slog.Any("err", err))
		os.Exit(1)
	}

	// Stopped after the server so events from in-flight requests are counted.
	collectorCtx, stopCollector := context.WithCancel(context.Background())
	defer stopCollector()

	var collector *metrics.Collector
	var collectorDone <-chan struct{}
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.BufferSize, log)
		collectorDone = collector.Start(collectorCtx)
	}

	alloc := allocator.New(log, sampler.NewFactory(log, cfg.Sampler.Type, cfg.Sampler.Seed))
	paperHandler := handler.NewPaperHandler(log, alloc, pool, collector)

	router := setupRouter(log, paperHandler, pool, collector, sampler.Resolve(cfg.Sampler.Type))

	srv, err := httpserver.New(cfg.Server.Address, router, serverTimeouts(cfg.Server))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		log.Info("Server listening", slog.String("address", srv.Addr()))
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
		stopCollector()
		waitCollector(collectorDone, cfg.Server.ShutdownTimeout, log)
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func loadPool(path string, log *slog.Logger) (*question.Pool, error) {
	pool, err := question.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load question pool: %w", err)
	}

	if pool.Len() == 0 {
		log.Warn("Question pool is empty, every paper will be empty", slog.String("path", path))
	} else {
		log.Info("Loaded question pool",
			slog.String("path", path),
			slog.Int("questions", pool.Len()),
			slog.Any("difficulties", pool.Counts()))
	}

	return pool, nil
}

// waitCollector blocks until the collector has drained or timeout passes. A
// nil done channel means metrics are disabled.
func waitCollector(done <-chan struct{}, timeout time.Duration, log *slog.Logger) bool {
	if done == nil {
		return true
	}

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		log.Warn("Metrics collector did not drain in time", slog.Duration("timeout", timeout))
		return false
	}
}

func serverTimeouts(sc config.ServerConfig) httpserver.Timeouts {
	return httpserver.Timeouts{
		Read:     sc.ReadTimeout,
		Write:    sc.WriteTimeout,
		Idle:     sc.IdleTimeout,
		Shutdown: sc.ShutdownTimeout,
	}
}

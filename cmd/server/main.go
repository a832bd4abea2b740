package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "ndasearch/internal/adapters/http"
	pg "ndasearch/internal/adapters/postgres"
	"ndasearch/internal/config"
	"ndasearch/internal/metrics"
	"ndasearch/internal/normalize"
	"ndasearch/internal/registry"
	compsvc "ndasearch/internal/services/companies"
	"ndasearch/internal/workers/searchlog"
)

func main() {
	cfg, err := config.Load()
	logger := newLogger(cfg.Env)
	slog.SetDefault(logger)
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()
	norm := normalize.New(cfg.Normalize.Tables())
	sources, details := registry.Build(cfg, norm, registry.NewHTTPClient(), logger)
	for _, s := range sources {
		logger.Info("registry enabled", "source", s.Name())
	}

	opts := []compsvc.Option{
		compsvc.WithPageSize(cfg.PageSize),
		compsvc.WithSourceTimeout(cfg.SourceTimeout),
		compsvc.WithMetrics(m),
		compsvc.WithLogger(logger),
	}

	// Optional search log; the service runs without a database.
	var queue *searchlog.Queue
	workersDone := make(chan struct{})
	if cfg.DatabaseURL != "" && cfg.SearchLogWorkers > 0 {
		if err := pg.Migrate(ctx, cfg.DatabaseURL); err != nil {
			logger.Error("db migrate", "error", err)
			os.Exit(1)
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL, int32(cfg.SearchLogWorkers)+2)
		if err != nil {
			logger.Error("db connect", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		queue = searchlog.NewQueue(cfg.SearchLogWorkers*64, m)
		opts = append(opts, compsvc.WithRecorder(queue))
		go func() {
			defer close(workersDone)
			searchlog.Run(ctx, db, queue, cfg.SearchLogWorkers, logger)
		}()
		logger.Info("search log workers started", "workers", cfg.SearchLogWorkers)
	} else {
		close(workersDone)
	}

	companies := compsvc.New(sources, details, opts...)
	srv := httpadapter.New(companies,
		httpadapter.WithMetricsHandler(m.Handler()),
		httpadapter.WithRateLimiter(httpadapter.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)),
		httpadapter.WithTrustProxyHeaders(cfg.TrustProxyHeaders),
		httpadapter.WithLogger(logger),
	)

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.SourceTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	logger.Info("listening", "addr", cfg.ListenAddr, "env", cfg.Env)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if queue != nil {
		queue.Close()
	}
	cancel()
	select {
	case <-workersDone:
	case <-shutdownCtx.Done():
		logger.Warn("search log drain timed out")
	}
}

func newLogger(env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

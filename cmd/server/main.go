package main

import (
	"context"
	"fmt"
	"foodindex/internal/api"
	"foodindex/internal/config"
	"foodindex/internal/engine"
	"foodindex/internal/logging"
	"foodindex/internal/session"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(api.RequestLogger(logger))
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	}

	// 2. Handler starts without data and answers 503 until the load finishes
	sessions := session.NewStore(cfg.SessionCapacity, cfg.SessionTTL)
	h := api.NewHandler(sessions, logger, api.NewMetrics(prometheus.NewRegistry(), sessions))
	h.RegisterRoutes(e)

	// 3. Load both files in the background; a failure stops the process
	go func() {
		logger.Info("loading datasets",
			slog.String("subindices", cfg.SubindexPath),
			slog.String("main_index", cfg.MainIndexPath),
		)
		t0 := time.Now()

		ds, err := engine.Load(ctx, cfg.SubindexPath, cfg.MainIndexPath, engine.LoadOptions{
			Delimiter: cfg.DelimiterRune(),
		})
		if errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			logger.Error("cannot load datasets", slog.String("error", err.Error()))
			os.Exit(1)
		}

		h.SetData(ds)
		logger.Info("datasets ready",
			slog.Int("subindex_rows", ds.Subindices.Len()),
			slog.Int("main_index_rows", ds.MainIndex.Len()),
			slog.Duration("elapsed", time.Since(t0)),
		)
	}()

	// 4. Serve until interrupted
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.String("error", err.Error()))
	}
}

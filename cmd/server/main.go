package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quote_backend/internal/app/di"
	"quote_backend/internal/platform/config"
	"quote_backend/internal/platform/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: ./config.yaml when present)")
	flag.Parse()

	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] failed to load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := di.New(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			zl.Error("failed to close resources", zap.Error(err))
		}
	}()

	// The only configuration problem reported to the operator; quotes degrade to fallback.
	if err := app.Settings.Validate(ctx); err != nil {
		zl.Warn("live quotes disabled", zap.Error(err))
	}
	if cfg.JWT.Secret == "" {
		zl.Warn("jwt.secret is not set; PUT /settings is disabled")
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           app.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.Refresh.Enabled {
		g.Go(func() error { return app.Refresher.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownTimeout := cfg.HTTP.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = 10 * time.Second
		}
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		zl.Info("shutting down")
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swot-auditor/swot-backend/config"
	"github.com/swot-auditor/swot-backend/internal/bootstrap"
	"github.com/swot-auditor/swot-backend/internal/platform/logger"
	"github.com/swot-auditor/swot-backend/internal/retention"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(logger.Options{
		Mode:   cfg.App.Environment,
		Level:  cfg.App.LogLevel,
		Redact: true,
		Salt:   cfg.App.LogSalt,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("bootstrap failed", "error", err)
	}
	defer app.Close()

	var scheduler *retention.Scheduler
	if cfg.Retention.Enabled {
		scheduler = retention.NewScheduler(app.Retention)
		if err := scheduler.Start(ctx); err != nil {
			lg.Fatal("retention scheduler", "error", err)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		// generation calls can take up to the oracle timeout
		WriteTimeout: cfg.Workflow.OracleTimeout + 30*time.Second,
	}

	go func() {
		lg.Info("listening", "addr", srv.Addr, "env", cfg.App.Environment, "version", cfg.App.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("http server", "error", err)
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http shutdown", "error", err)
	}
	if scheduler != nil {
		scheduler.Stop()
	}
}

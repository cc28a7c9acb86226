package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/lukasminkov/creative-funding-hub/internal/adapter/http"
	"github.com/lukasminkov/creative-funding-hub/internal/adapter/memory"
	"github.com/lukasminkov/creative-funding-hub/internal/adapter/postgres"
	"github.com/lukasminkov/creative-funding-hub/internal/adapter/scheduler"
	"github.com/lukasminkov/creative-funding-hub/internal/adapter/usecase"
	"github.com/lukasminkov/creative-funding-hub/internal/config"
	"github.com/lukasminkov/creative-funding-hub/internal/core/port"
	"github.com/lukasminkov/creative-funding-hub/internal/db"
)

// main is the entry point of the lifecycle service. It loads configuration,
// optionally runs database migrations, wires the store adapters and the
// lifecycle engine, then starts the HTTP server and the sweep scheduler.
// On receiving a termination signal it gracefully shuts down the server.
func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		opts := &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}
		var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
		if cfg.Log.JSONFormat() {
			handler = slog.NewJSONHandler(os.Stdout, opts)
		}
		logger = slog.New(handler)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		campaigns port.CampaignReader
		subs      port.SubmissionStore
		ledger    port.PaymentLedger
	)
	switch cfg.Store.Driver {
	case "memory":
		store := memory.NewStore()
		campaigns, subs, ledger = store, store, memory.NewLedger()
		logger.Warn("using in-memory store; state is lost on shutdown")
	default:
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
				os.Exit(1)
			}
			logger.Info("migrations applied successfully")
		}
		pool, perr := db.NewPostgresPool(ctx, cfg.Psql)
		if perr != nil {
			logger.Error("database connection error", slog.Any("error", perr))
			os.Exit(1)
		}
		defer pool.Close()
		if cfg.Psql.SeedDemo {
			if err = db.Seed(ctx, pool); err != nil {
				logger.Error("seed error", slog.Any("error", err))
			} else {
				logger.Info("demo data seeded")
			}
		}
		campaigns = postgres.NewCampaignRepository(pool)
		subs = postgres.NewSubmissionRepository(pool)
		ledger = postgres.NewPaymentRepository(pool)
	}

	svc := usecase.NewLifecycleService(campaigns, subs, ledger, nil, logger)
	svc.SetSweepWorkers(cfg.Sweep.Workers)

	if cfg.Sweep.Enabled {
		sweeper := scheduler.NewSweeper(svc, cfg.Sweep.Interval, logger)
		go sweeper.Run(ctx)
	}

	handler := httpadapter.NewHandler(svc, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}

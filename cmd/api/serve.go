package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dietlog/dietlog-go/internal/api"
	"github.com/dietlog/dietlog-go/internal/config"
	"github.com/dietlog/dietlog-go/internal/crypto"
	"github.com/dietlog/dietlog-go/internal/handler"
	"github.com/dietlog/dietlog-go/internal/middleware"
	"github.com/dietlog/dietlog-go/internal/migrations"
	"github.com/dietlog/dietlog-go/internal/repository"
	"github.com/dietlog/dietlog-go/internal/service"
	"github.com/dietlog/dietlog-go/internal/telemetry"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), ctx.cfg)
		},
	}
}

func sessionCodec(cfg config.Config) crypto.SessionCodec {
	if cfg.SessionMode == config.SessionSigned {
		return crypto.NewJWTCodec(cfg.SessionSecret, cfg.SessionMaxAge)
	}
	slog.Warn("plain session mode: tokens are user ids and never expire server-side")
	return crypto.PlainCodec{}
}

func runServe(parent context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := migrations.Up(ctx, db.DB, cfg.DatabaseDriver); err != nil {
			return err
		}
	}

	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewMealRepository(db)

	sessions := service.NewSessionAuthority(userRepo, sessionCodec(cfg), cfg.SessionMaxAge)
	authService := service.NewAuthService(userRepo, sessions)
	mealService := service.NewMealService(mealRepo)

	var metrics *telemetry.Metrics
	if cfg.MetricsEnabled {
		metrics = telemetry.New()
	}

	limiter := middleware.NewIPRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)
	go limiter.RunPruner(time.Minute, ctx.Done())

	var recorder handler.MutationRecorder
	if metrics != nil {
		recorder = metrics
	}

	router := api.NewRouter(api.Deps{
		Auth:     handler.NewAuthHandler(authService),
		Meals:    handler.NewMealHandler(mealService, recorder),
		Sessions: sessions,
		Limiter:  limiter,
		Metrics:  metrics,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DatabaseDriver, "session_mode", cfg.SessionMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

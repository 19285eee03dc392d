package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrJamesThe3rd/finplan/internal/config"
	"github.com/MrJamesThe3rd/finplan/internal/database"
	"github.com/MrJamesThe3rd/finplan/internal/export"
	finplanHttp "github.com/MrJamesThe3rd/finplan/internal/http"
	"github.com/MrJamesThe3rd/finplan/internal/http/auth"
	exportHandler "github.com/MrJamesThe3rd/finplan/internal/http/export"
	lenderHandler "github.com/MrJamesThe3rd/finplan/internal/http/lender"
	offerHandler "github.com/MrJamesThe3rd/finplan/internal/http/offer"
	planHandler "github.com/MrJamesThe3rd/finplan/internal/http/plan"
	"github.com/MrJamesThe3rd/finplan/internal/lender"
	lenderStore "github.com/MrJamesThe3rd/finplan/internal/lender/store"
	"github.com/MrJamesThe3rd/finplan/internal/offer"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
	planStore "github.com/MrJamesThe3rd/finplan/internal/plan/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("AUTH_JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	offers, closeOffers, err := offer.NewProvider(ctx, cfg)
	if err != nil {
		slog.Error("failed to set up offer provider", "error", err)
		os.Exit(1)
	}
	defer closeOffers()

	var (
		planService   = plan.NewService(planStore.New(db), offers)
		lenderService = lender.NewService(lenderStore.New(db))
		exportService = export.NewService(planService, lenderService)
	)

	router := finplanHttp.New(
		finplanHttp.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Authenticate:   auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer).Middleware,
		},
		planHandler.NewHandler(planService),
		offerHandler.NewHandler(planService, lenderService),
		lenderHandler.NewHandler(lenderService),
		exportHandler.NewHandler(exportService),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
}

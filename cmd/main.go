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

	_ "teabag/docs"
	"teabag/internal/handler"
	"teabag/internal/oauth"
	"teabag/internal/repository"
	"teabag/internal/router"
	"teabag/internal/service"
	"teabag/pkg/config"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const tokenPruneInterval = time.Hour

// @title Teabag API
// @version 1.0
// @description Cohort team formation: Google sign-in, teams, notices and roster upload
// @BasePath /api
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name accessToken
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Configure logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := config.MustInitDB(ctx, *cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	slog.Info("successfully connected to database")

	if err := repository.Migrate(ctx, pool); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	google, err := oauth.NewGoogleProvider(ctx, oauth.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Issuer:       cfg.GoogleIssuer,
	})
	if err != nil {
		slog.Error("failed to initialise google provider", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	authRepo := repository.NewAuthRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	teamRepo := repository.NewTeamRepository(pool)
	noticeRepo := repository.NewNoticeRepository(pool)
	cohortRepo := repository.NewCohortRepository(pool)
	rosterRepo := repository.NewRosterRepository(pool)

	validate := validator.New()

	// Initialize services
	authService := service.NewAuthService(authRepo, userRepo, google, service.TokenConfig{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})
	teamService := service.NewTeamService(teamRepo)
	noticeService := service.NewNoticeService(noticeRepo, teamService)
	cohortService := service.NewCohortService(cohortRepo)
	rosterService := service.NewRosterService(rosterRepo)

	cookies := handler.CookieConfig{Secure: cfg.IsProduction()}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := router.SetupRouter(router.Handlers{
		Auth:   handler.NewAuthHandler(authService, validate, cookies),
		Team:   handler.NewTeamHandler(teamService, validate),
		Notice: handler.NewNoticeHandler(noticeService, validate),
		Cohort: handler.NewCohortHandler(cohortService),
		Admin:  handler.NewAdminHandler(rosterService, cfg.MaxUploadBytes),
		Health: handler.NewHealthHandler(pool),
	}, authService, router.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Registry:       registry,
	})

	slog.Info("successfully configured services and handlers")

	go pruneRefreshTokens(ctx, authService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("starting server", "port", cfg.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func pruneRefreshTokens(ctx context.Context, auth *service.AuthService) {
	ticker := time.NewTicker(tokenPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := auth.PruneExpiredTokens(ctx)
			if err != nil {
				slog.Error("failed to prune refresh tokens", "error", err)
				continue
			}
			if deleted > 0 {
				slog.Info("pruned expired refresh tokens", "count", deleted)
			}
		}
	}
}

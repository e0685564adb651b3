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

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stripe/stripe-go/v76"

	"github.com/Dosada05/ticket-tournament/db"
	"github.com/Dosada05/ticket-tournament/handlers"
	"github.com/Dosada05/ticket-tournament/metrics"
	"github.com/Dosada05/ticket-tournament/repositories"
	api "github.com/Dosada05/ticket-tournament/routes"
	"github.com/Dosada05/ticket-tournament/services"
	"github.com/Dosada05/ticket-tournament/storage"
)

const shutdownTimeout = 15 * time.Second

func serve(ctx context.Context, logger *slog.Logger) error {
	cfg, dbConn, err := openDatabase(logger)
	if err != nil {
		return err
	}
	defer closeDatabase(dbConn, logger)

	if err := db.CreateSchema(ctx, dbConn); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	// Инициализация загрузчика файлов (Cloudflare R2), если он настроен
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 is not configured, ticket export archives are disabled")
	}

	var notifier services.Notifier
	if cfg.SMTPEnabled() {
		notifier = services.NewEmailService(cfg)
	} else {
		logger.Warn("SMTP is not configured, emails are disabled")
	}

	if cfg.StripeSecretKey != "" {
		stripe.Key = cfg.StripeSecretKey
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	// Инициализация репозиториев
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	adminRepo := repositories.NewPostgresAdminRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	ticketRepo := repositories.NewPostgresTicketRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	leaderboardRepo := repositories.NewPostgresLeaderboardRepository(dbConn)
	prizeRepo := repositories.NewPostgresPrizeRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	tokens := services.NewTokenIssuer(cfg.JWTSecretKey, services.DefaultTokenTTL)
	authService := services.NewAuthService(playerRepo, adminRepo, logger)
	tournamentService := services.NewTournamentService(tournamentRepo, teamRepo, logger)
	ticketService := services.NewTicketService(tournamentRepo, teamRepo, ticketRepo, playerRepo, notifier, uploader, m, logger)
	leaderboardService := services.NewLeaderboardService(scoreRepo, ticketRepo, leaderboardRepo, teamRepo, nil, m, logger)
	prizeService := services.NewPrizeService(tournamentRepo, ticketRepo, prizeRepo, playerRepo, notifier, m, logger)
	paymentService := services.NewPaymentService(cfg.StripeWebhookSecret, ticketService, logger)
	dashboardService := services.NewDashboardService(playerRepo, ticketRepo, tournamentRepo)
	logger.Info("Services initialized")

	// Запуск планировщика автоматического завершения турниров
	schedCtx, cancelSched := context.WithCancel(context.Background())
	defer cancelSched()
	scheduler, err := services.StartAutoCompleteScheduler(schedCtx, tournamentService, cfg.AutoCompleteInterval, logger)
	if err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error("failed to stop scheduler", slog.Any("error", err))
		}
	}()

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		handlers.NewAuthHandler(authService, tokens, cfg.CookieSecure),
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewTicketHandler(ticketService),
		handlers.NewScoreHandler(leaderboardService),
		handlers.NewLeaderboardHandler(leaderboardService),
		handlers.NewPrizeHandler(prizeService),
		handlers.NewDashboardHandler(dashboardService),
		handlers.NewWebhookHandler(paymentService),
		tokens,
		cfg.CORSAllowedOrigins,
		registry,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // xlsx-выгрузка большого турнира
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr), slog.String("public_url", cfg.PublicURL))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancelSched()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			// If shutdown fails, force close.
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
	return nil
}

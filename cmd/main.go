package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/urfave/cli/v2"

	"github.com/Dosada05/ticket-tournament/config"
	"github.com/Dosada05/ticket-tournament/db"
	"github.com/Dosada05/ticket-tournament/repositories"
	"github.com/Dosada05/ticket-tournament/services"
)

const dbConnectTimeout = 5 * time.Second

// @title Ticket Tournament API
// @version 1.0
// @description Билеты, очки команд, лидерборд и призы.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	app := &cli.App{
		Name:  "ticket-tournament",
		Usage: "ticket tournament backend",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API and the auto-complete scheduler",
				Action: func(c *cli.Context) error {
					return serve(c.Context, logger)
				},
			},
			{
				Name:  "migrate",
				Usage: "create database tables if they do not exist",
				Action: func(c *cli.Context) error {
					return migrate(c.Context, logger)
				},
			},
			{
				Name:  "recompute",
				Usage: "recompute ticket totals and rebuild the leaderboard of one tournament",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "tournament-id", Aliases: []string{"t"}, Required: true},
				},
				Action: func(c *cli.Context) error {
					return recompute(c.Context, logger, c.Int("tournament-id"))
				},
			},
		},
		// без подкоманды запускаем сервер
		Action: func(c *cli.Context) error {
			return serve(c.Context, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// openDatabase загружает конфигурацию и подключается к базе.
func openDatabase(logger *slog.Logger) (*config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")
	return cfg, dbConn, nil
}

func closeDatabase(dbConn *sql.DB, logger *slog.Logger) {
	if err := dbConn.Close(); err != nil {
		logger.Error("failed to close database connection", slog.Any("error", err))
	} else {
		logger.Info("database connection closed")
	}
}

func migrate(ctx context.Context, logger *slog.Logger) error {
	_, dbConn, err := openDatabase(logger)
	if err != nil {
		return err
	}
	defer closeDatabase(dbConn, logger)

	if err := db.CreateSchema(ctx, dbConn); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	logger.Info("database schema is up to date")
	return nil
}

// recompute чинит суммы билетов и лидерборд после ручной правки очков в базе.
func recompute(ctx context.Context, logger *slog.Logger, tournamentID int) error {
	_, dbConn, err := openDatabase(logger)
	if err != nil {
		return err
	}
	defer closeDatabase(dbConn, logger)

	leaderboardService := services.NewLeaderboardService(
		repositories.NewPostgresScoreRepository(dbConn),
		repositories.NewPostgresTicketRepository(dbConn),
		repositories.NewPostgresLeaderboardRepository(dbConn),
		repositories.NewPostgresTeamRepository(dbConn),
		nil,
		nil,
		logger,
	)

	if err := leaderboardService.RecomputeTicketTotals(ctx, tournamentID); err != nil {
		return fmt.Errorf("recompute ticket totals: %w", err)
	}
	ranked, err := leaderboardService.RebuildLeaderboard(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("rebuild leaderboard: %w", err)
	}
	logger.Info("tournament recomputed", slog.Int("tournament_id", tournamentID), slog.Int("teams_ranked", ranked))
	return nil
}

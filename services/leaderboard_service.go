package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Dosada05/ticket-tournament/metrics"
	"github.com/Dosada05/ticket-tournament/models"
	"github.com/Dosada05/ticket-tournament/ranking"
	"github.com/Dosada05/ticket-tournament/repositories"
)

// RecordScoreInput uses pointers so a missing field can be told apart from a zero value.
type RecordScoreInput struct {
	TournamentID *int     `json:"tournament_id"`
	TeamID       *int     `json:"team_id"`
	RoundNumber  *int     `json:"round_number"`
	Points       *float64 `json:"points"`
}

func (in RecordScoreInput) validate() error {
	if in.TournamentID == nil || in.TeamID == nil || in.RoundNumber == nil || in.Points == nil {
		return fmt.Errorf("%w: tournament_id, team_id, round_number and points are required", ErrValidationFailed)
	}
	if *in.TournamentID <= 0 || *in.TeamID <= 0 {
		return fmt.Errorf("%w: tournament_id and team_id must be positive", ErrValidationFailed)
	}
	// раунд 0 допустим
	if *in.RoundNumber < 0 {
		return fmt.Errorf("%w: round_number must not be negative", ErrValidationFailed)
	}
	return nil
}

// TotalsRecomputer brings every ticket's total_points of a tournament in line with the stored scores.
type TotalsRecomputer interface {
	RecomputeTicketTotals(ctx context.Context, tournamentID int) error
}

type LeaderboardService interface {
	RecordScore(ctx context.Context, input RecordScoreInput) (*models.Score, error)
	RecomputeTicketTotals(ctx context.Context, tournamentID int) error
	RebuildLeaderboard(ctx context.Context, tournamentID int) (int, error)
	GetLeaderboard(ctx context.Context, tournamentID int) ([]*models.LeaderboardEntry, error)
	GetTicketLeaderboard(ctx context.Context, tournamentID int) ([]models.TicketStanding, error)
	ListScores(ctx context.Context, tournamentID int) ([]models.Score, error)
}

type leaderboardService struct {
	scoreRepo       repositories.ScoreRepository
	ticketRepo      repositories.TicketRepository
	leaderboardRepo repositories.LeaderboardRepository
	teamRepo        repositories.TeamRepository
	recomputer      TotalsRecomputer
	metrics         *metrics.Metrics
	logger          *slog.Logger
}

// NewLeaderboardService собирает движок лидерборда. Если recomputer равен nil,
// используется полный пересчёт всех билетов турнира.
func NewLeaderboardService(
	scoreRepo repositories.ScoreRepository,
	ticketRepo repositories.TicketRepository,
	leaderboardRepo repositories.LeaderboardRepository,
	teamRepo repositories.TeamRepository,
	recomputer TotalsRecomputer,
	m *metrics.Metrics,
	logger *slog.Logger,
) LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if recomputer == nil {
		recomputer = NewFullTotalsRecomputer(scoreRepo, ticketRepo, m, logger)
	}
	return &leaderboardService{
		scoreRepo:       scoreRepo,
		ticketRepo:      ticketRepo,
		leaderboardRepo: leaderboardRepo,
		teamRepo:        teamRepo,
		recomputer:      recomputer,
		metrics:         m,
		logger:          logger,
	}
}

func (s *leaderboardService) RecordScore(ctx context.Context, input RecordScoreInput) (*models.Score, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	score := &models.Score{
		TournamentID: *input.TournamentID,
		TeamID:       *input.TeamID,
		RoundNumber:  *input.RoundNumber,
		Points:       *input.Points,
		UpdatedAt:    time.Now().UTC(),
	}
	err := s.scoreRepo.Upsert(ctx, nil, score)
	s.metrics.ScoreWritten(err)
	if err != nil {
		return nil, persistenceError("record score", err)
	}

	// Очки уже сохранены: при ошибке ниже они не откатываются.
	if err := s.recomputer.RecomputeTicketTotals(ctx, score.TournamentID); err != nil {
		return nil, err
	}
	if _, err := s.RebuildLeaderboard(ctx, score.TournamentID); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "score recorded",
		slog.Int("tournament_id", score.TournamentID),
		slog.Int("team_id", score.TeamID),
		slog.Int("round", score.RoundNumber),
		slog.Float64("points", score.Points),
	)
	return score, nil
}

func (s *leaderboardService) RecomputeTicketTotals(ctx context.Context, tournamentID int) error {
	if tournamentID <= 0 {
		return fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	return s.recomputer.RecomputeTicketTotals(ctx, tournamentID)
}

func (s *leaderboardService) RebuildLeaderboard(ctx context.Context, tournamentID int) (int, error) {
	if tournamentID <= 0 {
		return 0, fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	start := time.Now()

	totals, err := s.scoreRepo.SumByTeam(ctx, nil, tournamentID)
	if err != nil {
		return 0, persistenceError("aggregate team scores", err)
	}

	entries := ranking.RankTeams(tournamentID, totals)

	if err := s.leaderboardRepo.DeleteByTournamentID(ctx, nil, tournamentID); err != nil {
		return 0, persistenceError("clear leaderboard", err)
	}
	if err := s.leaderboardRepo.BulkUpsert(ctx, nil, entries); err != nil {
		return 0, persistenceError("write leaderboard", err)
	}

	s.metrics.ObserveRebuild(start, strconv.Itoa(tournamentID), len(entries))
	s.logger.DebugContext(ctx, "leaderboard rebuilt", slog.Int("tournament_id", tournamentID), slog.Int("teams", len(entries)))
	return len(entries), nil
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, tournamentID int) ([]*models.LeaderboardEntry, error) {
	if tournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	entries, err := s.leaderboardRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, persistenceError("list leaderboard", err)
	}
	return entries, nil
}

func (s *leaderboardService) GetTicketLeaderboard(ctx context.Context, tournamentID int) ([]models.TicketStanding, error) {
	if tournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	tickets, err := s.ticketRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, persistenceError("list tickets", err)
	}
	attachTeams(ctx, s.teamRepo, tickets, s.logger)
	return ranking.RankTickets(tickets), nil
}

func (s *leaderboardService) ListScores(ctx context.Context, tournamentID int) ([]models.Score, error) {
	if tournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	scores, err := s.scoreRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, persistenceError("list scores", err)
	}
	return scores, nil
}

// fullTotalsRecomputer пересчитывает все билеты турнира целиком.
type fullTotalsRecomputer struct {
	scoreRepo  repositories.ScoreRepository
	ticketRepo repositories.TicketRepository
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewFullTotalsRecomputer(
	scoreRepo repositories.ScoreRepository,
	ticketRepo repositories.TicketRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
) TotalsRecomputer {
	if logger == nil {
		logger = slog.Default()
	}
	return &fullTotalsRecomputer{scoreRepo: scoreRepo, ticketRepo: ticketRepo, metrics: m, logger: logger}
}

func (r *fullTotalsRecomputer) RecomputeTicketTotals(ctx context.Context, tournamentID int) error {
	start := time.Now()
	defer r.metrics.ObserveRecompute(start)

	tickets, err := r.ticketRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return persistenceError("list tickets for recompute", err)
	}

	for _, t := range tickets {
		totals, err := r.scoreRepo.SumByTeamSet(ctx, nil, tournamentID, t.TeamIDs)
		if err != nil {
			return persistenceError(fmt.Sprintf("aggregate scores for ticket %d", t.ID), err)
		}
		// Записываем всегда, даже если сумма не изменилась
		if err := r.ticketRepo.UpdateTotalPoints(ctx, nil, t.ID, ranking.SumTotals(totals)); err != nil {
			return persistenceError(fmt.Sprintf("update total for ticket %d", t.ID), err)
		}
	}

	r.logger.DebugContext(ctx, "ticket totals recomputed", slog.Int("tournament_id", tournamentID), slog.Int("tickets", len(tickets)))
	return nil
}

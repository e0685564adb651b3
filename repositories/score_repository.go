package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/ticket-tournament/models"
)

var ErrScoreNotFound = errors.New("score not found")

type ScoreRepository interface {
	Upsert(ctx context.Context, exec SQLExecutor, score *models.Score) error
	FindOne(ctx context.Context, exec SQLExecutor, tournamentID, teamID, roundNumber int) (*models.Score, error)
	// SumByTeam возвращает суммы очков по всем командам турнира в порядке возрастания team_id.
	SumByTeam(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.TeamTotal, error)
	// SumByTeamSet is SumByTeam restricted to teamIDs. Teams without scores are absent from the result.
	SumByTeamSet(ctx context.Context, exec SQLExecutor, tournamentID int, teamIDs []int) ([]models.TeamTotal, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Score, error)
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresScoreRepository) Upsert(ctx context.Context, exec SQLExecutor, score *models.Score) error {
	executor := r.getExecutor(exec)
	if score.UpdatedAt.IsZero() {
		score.UpdatedAt = time.Now()
	}
	query := `
		INSERT INTO scores (tournament_id, team_id, round_number, points, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tournament_id, team_id, round_number)
		DO UPDATE SET points = EXCLUDED.points, updated_at = EXCLUDED.updated_at
		RETURNING id, updated_at`

	err := executor.QueryRowContext(ctx, query,
		score.TournamentID, score.TeamID, score.RoundNumber, score.Points, score.UpdatedAt,
	).Scan(&score.ID, &score.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert score t:%d team:%d round:%d: %w", score.TournamentID, score.TeamID, score.RoundNumber, err)
	}
	return nil
}

func (r *postgresScoreRepository) FindOne(ctx context.Context, exec SQLExecutor, tournamentID, teamID, roundNumber int) (*models.Score, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, team_id, round_number, points, updated_at
		FROM scores
		WHERE tournament_id = $1 AND team_id = $2 AND round_number = $3`

	s, err := scanScore(executor.QueryRowContext(ctx, query, tournamentID, teamID, roundNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresScoreRepository) SumByTeam(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.TeamTotal, error) {
	query := `
		SELECT team_id, SUM(points)
		FROM scores
		WHERE tournament_id = $1
		GROUP BY team_id
		ORDER BY team_id ASC`
	return r.queryTotals(ctx, r.getExecutor(exec), query, tournamentID)
}

func (r *postgresScoreRepository) SumByTeamSet(ctx context.Context, exec SQLExecutor, tournamentID int, teamIDs []int) ([]models.TeamTotal, error) {
	if len(teamIDs) == 0 {
		return []models.TeamTotal{}, nil
	}
	query := `
		SELECT team_id, SUM(points)
		FROM scores
		WHERE tournament_id = $1 AND team_id = ANY($2)
		GROUP BY team_id
		ORDER BY team_id ASC`
	return r.queryTotals(ctx, r.getExecutor(exec), query, tournamentID, intArray(teamIDs))
}

func (r *postgresScoreRepository) queryTotals(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]models.TeamTotal, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate scores: %w", err)
	}
	defer rows.Close()

	totals := make([]models.TeamTotal, 0)
	for rows.Next() {
		var t models.TeamTotal
		if err := rows.Scan(&t.TeamID, &t.TotalPoints); err != nil {
			return nil, fmt.Errorf("failed to scan team total: %w", err)
		}
		totals = append(totals, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *postgresScoreRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Score, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, team_id, round_number, points, updated_at
		FROM scores
		WHERE tournament_id = $1
		ORDER BY round_number ASC, team_id ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]models.Score, 0)
	for rows.Next() {
		s, errScan := scanScore(rows)
		if errScan != nil {
			return nil, errScan
		}
		scores = append(scores, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

func scanScore(row rowScanner) (*models.Score, error) {
	var s models.Score
	if err := row.Scan(&s.ID, &s.TournamentID, &s.TeamID, &s.RoundNumber, &s.Points, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

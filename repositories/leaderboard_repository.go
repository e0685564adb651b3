package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dosada05/ticket-tournament/models"
)

type LeaderboardRepository interface {
	DeleteByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error
	BulkUpsert(ctx context.Context, exec SQLExecutor, entries []*models.LeaderboardEntry) error
	// ListByTournament returns entries sorted by rank ascending with the team attached when it exists.
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.LeaderboardEntry, error)
}

type postgresLeaderboardRepository struct {
	db *sql.DB // Main DB connection, can be used if exec is nil
}

func NewPostgresLeaderboardRepository(db *sql.DB) LeaderboardRepository {
	return &postgresLeaderboardRepository{db: db}
}

func (r *postgresLeaderboardRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresLeaderboardRepository) DeleteByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM leaderboard_entries WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to clear leaderboard for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresLeaderboardRepository) BulkUpsert(ctx context.Context, exec SQLExecutor, entries []*models.LeaderboardEntry) (err error) {
	if len(entries) == 0 {
		return nil
	}

	// Если транзакция не передана, открываем свою
	tx, ok := exec.(*sql.Tx)
	if !ok {
		tx, err = r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("BulkUpsert failed to begin transaction: %w", err)
		}
		defer func() {
			if p := recover(); p != nil {
				_ = tx.Rollback()
				panic(p)
			} else if err != nil {
				_ = tx.Rollback()
			} else {
				err = tx.Commit()
			}
		}()
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leaderboard_entries (tournament_id, team_id, total_points, rank, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tournament_id, team_id)
		DO UPDATE SET total_points = EXCLUDED.total_points, rank = EXCLUDED.rank, updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("BulkUpsert failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, e := range entries {
		if e.UpdatedAt.IsZero() {
			e.UpdatedAt = now
		}
		_, err = stmt.ExecContext(ctx, e.TournamentID, e.TeamID, e.TotalPoints, e.Rank, e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("BulkUpsert failed for team %d: %w", e.TeamID, err)
		}
	}
	return nil
}

func (r *postgresLeaderboardRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.LeaderboardEntry, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT le.id, le.tournament_id, le.team_id, le.total_points, le.rank, le.updated_at,
		       t.id, t.seed_number, t.team_name, t.status, t.created_at
		FROM leaderboard_entries le
		LEFT JOIN teams t ON t.id = le.team_id
		WHERE le.tournament_id = $1
		ORDER BY le.rank ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.LeaderboardEntry, 0)
	for rows.Next() {
		var e models.LeaderboardEntry
		var teamID sql.NullInt64
		var seed, name, status sql.NullString
		var teamCreatedAt sql.NullTime

		if err := rows.Scan(
			&e.ID, &e.TournamentID, &e.TeamID, &e.TotalPoints, &e.Rank, &e.UpdatedAt,
			&teamID, &seed, &name, &status, &teamCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		if teamID.Valid {
			team := &models.Team{
				ID:           int(teamID.Int64),
				TournamentID: e.TournamentID,
				SeedNumber:   seed.String,
				Status:       models.TeamStatus(status.String),
				CreatedAt:    teamCreatedAt.Time,
			}
			if name.Valid {
				team.TeamName = &name.String
			}
			e.Team = team
		}
		entries = append(entries, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

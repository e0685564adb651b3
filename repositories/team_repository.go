package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/ticket-tournament/models"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamSeedConflict      = errors.New("team seed number already exists in this tournament")
	ErrTeamTournamentInvalid = errors.New("team tournament conflict or invalid")
)

type TeamRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, teams []*models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByIDs(ctx context.Context, ids []int) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	// ListByTournament сортирует по номеру посева.
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) CreateBatch(ctx context.Context, exec SQLExecutor, teams []*models.Team) (err error) {
	if len(teams) == 0 {
		return nil
	}

	tx, ok := exec.(*sql.Tx)
	if !ok {
		tx, err = r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("CreateBatch failed to begin transaction: %w", err)
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
		INSERT INTO teams (tournament_id, seed_number, team_name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`)
	if err != nil {
		return fmt.Errorf("CreateBatch failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range teams {
		err = stmt.QueryRowContext(ctx, t.TournamentID, t.SeedNumber, t.TeamName, t.Status).Scan(&t.ID, &t.CreatedAt)
		if err != nil {
			if mapped := handleTeamError(err); mapped != err {
				return mapped
			}
			return fmt.Errorf("CreateBatch failed for seed %s: %w", t.SeedNumber, err)
		}
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, tournament_id, seed_number, team_name, status, created_at FROM teams WHERE id = $1`
	t, err := scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Team, error) {
	if len(ids) == 0 {
		return []models.Team{}, nil
	}
	query := `
		SELECT id, tournament_id, seed_number, team_name, status, created_at
		FROM teams WHERE id = ANY($1) ORDER BY id ASC`
	return r.queryTeams(ctx, query, intArray(ids))
}

func (r *postgresTeamRepository) Update(ctx context.Context, t *models.Team) error {
	query := `UPDATE teams SET seed_number = $1, team_name = $2, status = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, t.SeedNumber, t.TeamName, t.Status, t.ID)
	if err != nil {
		return handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	query := `
		SELECT id, tournament_id, seed_number, team_name, status, created_at
		FROM teams WHERE tournament_id = $1 ORDER BY seed_number ASC, id ASC`
	return r.queryTeams(ctx, query, tournamentID)
}

func (r *postgresTeamRepository) queryTeams(ctx context.Context, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		t, errScan := scanTeam(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan team: %w", errScan)
		}
		teams = append(teams, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func scanTeam(row rowScanner) (*models.Team, error) {
	var t models.Team
	if err := row.Scan(&t.ID, &t.TournamentID, &t.SeedNumber, &t.TeamName, &t.Status, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func handleTeamError(err error) error {
	if code, constraint, ok := pqErrorCode(err); ok {
		switch {
		case code == "23505" && constraint == "teams_tournament_id_seed_number_key":
			return ErrTeamSeedConflict
		case code == "23503" && constraint == "teams_tournament_id_fkey":
			return ErrTeamTournamentInvalid
		}
	}
	return err
}

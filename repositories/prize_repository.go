package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/ticket-tournament/models"
	"github.com/lib/pq"
)

var (
	ErrPrizeNotFound          = errors.New("prize not found")
	ErrPrizeTournamentInvalid = errors.New("prize tournament conflict or invalid")
)

type PrizeRepository interface {
	Create(ctx context.Context, prize *models.Prize) error
	GetByID(ctx context.Context, id int) (*models.Prize, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Prize, error)
	// Save перезаписывает конфигурацию приза вместе со списком победителей.
	Save(ctx context.Context, exec SQLExecutor, prize *models.Prize) error
}

type postgresPrizeRepository struct {
	db *sql.DB
}

func NewPostgresPrizeRepository(db *sql.DB) PrizeRepository {
	return &postgresPrizeRepository{db: db}
}

func (r *postgresPrizeRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPrizeRepository) Create(ctx context.Context, p *models.Prize) error {
	if p.WinnerTicketIDs == nil {
		p.WinnerTicketIDs = []int{}
	}
	query := `
		INSERT INTO prizes (tournament_id, prize_type, amount, item, winner_ticket_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.TournamentID, p.PrizeType, p.Amount, p.Item, intArray(p.WinnerTicketIDs),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if code, constraint, ok := pqErrorCode(err); ok && code == "23503" && constraint == "prizes_tournament_id_fkey" {
			return ErrPrizeTournamentInvalid
		}
		return err
	}
	return nil
}

func (r *postgresPrizeRepository) GetByID(ctx context.Context, id int) (*models.Prize, error) {
	query := `
		SELECT id, tournament_id, prize_type, amount, item, winner_ticket_ids, created_at
		FROM prizes WHERE id = $1`
	p, err := scanPrize(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPrizeNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPrizeRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Prize, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, prize_type, amount, item, winner_ticket_ids, created_at
		FROM prizes
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes: %w", err)
	}
	defer rows.Close()

	prizes := make([]*models.Prize, 0)
	for rows.Next() {
		p, errScan := scanPrize(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan prize: %w", errScan)
		}
		prizes = append(prizes, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return prizes, nil
}

func (r *postgresPrizeRepository) Save(ctx context.Context, exec SQLExecutor, p *models.Prize) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE prizes SET prize_type = $1, amount = $2, item = $3, winner_ticket_ids = $4
		WHERE id = $5`
	result, err := executor.ExecContext(ctx, query, p.PrizeType, p.Amount, p.Item, intArray(p.WinnerTicketIDs), p.ID)
	if err != nil {
		return fmt.Errorf("failed to save prize %d: %w", p.ID, err)
	}
	return checkAffectedRows(result, ErrPrizeNotFound)
}

func scanPrize(row rowScanner) (*models.Prize, error) {
	var p models.Prize
	var winners pq.Int64Array
	if err := row.Scan(&p.ID, &p.TournamentID, &p.PrizeType, &p.Amount, &p.Item, &winners, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.WinnerTicketIDs = intsFromArray(winners)
	return &p, nil
}

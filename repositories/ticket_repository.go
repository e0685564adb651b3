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
	ErrTicketNotFound          = errors.New("ticket not found")
	ErrTicketNumberConflict    = errors.New("ticket number conflict")
	ErrTicketPaymentConflict   = errors.New("ticket already issued for this payment")
	ErrTicketTournamentInvalid = errors.New("ticket tournament conflict or invalid")
	ErrTicketPlayerInvalid     = errors.New("ticket player conflict or invalid")
)

const MaxTicketListLimit = 1000

type ListTicketsFilter struct {
	TournamentID *int
	PlayerID     *int
	Limit        int
}

type TicketRepository interface {
	Create(ctx context.Context, exec SQLExecutor, ticket *models.Ticket) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Ticket, error)
	GetByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]models.Ticket, error)
	// ListByTournament returns every ticket of the tournament in stored (id) order.
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Ticket, error)
	List(ctx context.Context, filter ListTicketsFilter) ([]models.Ticket, error)
	ListRecent(ctx context.Context, limit int) ([]models.Ticket, error)
	UpdateTotalPoints(ctx context.Context, exec SQLExecutor, id int, totalPoints float64) error
	MarkWinner(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresTicketRepository struct {
	db *sql.DB
}

func NewPostgresTicketRepository(db *sql.DB) TicketRepository {
	return &postgresTicketRepository{db: db}
}

func (r *postgresTicketRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const ticketColumns = `id, player_id, tournament_id, ticket_number, access_code, team_ids, status,
		total_points, is_winner, payment_ref, created_at`

func (r *postgresTicketRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Ticket) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tickets (player_id, tournament_id, ticket_number, access_code, team_ids, status, total_points, is_winner, payment_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		t.PlayerID, t.TournamentID, t.TicketNumber, t.AccessCode, intArray(t.TeamIDs),
		t.Status, t.TotalPoints, t.IsWinner, t.PaymentRef,
	).Scan(&t.ID, &t.CreatedAt)

	return r.handleTicketError(err)
}

func (r *postgresTicketRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Ticket, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	t, err := scanTicket(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTicketRepository) GetByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]models.Ticket, error) {
	if len(ids) == 0 {
		return []models.Ticket{}, nil
	}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = ANY($1) ORDER BY id ASC`
	return r.queryTickets(ctx, r.getExecutor(exec), query, intArray(ids))
}

func (r *postgresTicketRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE tournament_id = $1 ORDER BY id ASC`
	return r.queryTickets(ctx, r.getExecutor(exec), query, tournamentID)
}

func (r *postgresTicketRepository) List(ctx context.Context, filter ListTicketsFilter) ([]models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.TournamentID != nil {
		query += fmt.Sprintf(" AND tournament_id = $%d", argID)
		args = append(args, *filter.TournamentID)
		argID++
	}
	if filter.PlayerID != nil {
		query += fmt.Sprintf(" AND player_id = $%d", argID)
		args = append(args, *filter.PlayerID)
		argID++
	}

	limit := filter.Limit
	if limit <= 0 || limit > MaxTicketListLimit {
		limit = MaxTicketListLimit
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", argID)
	args = append(args, limit)

	return r.queryTickets(ctx, r.db, query, args...)
}

func (r *postgresTicketRepository) ListRecent(ctx context.Context, limit int) ([]models.Ticket, error) {
	return r.List(ctx, ListTicketsFilter{Limit: limit})
}

func (r *postgresTicketRepository) UpdateTotalPoints(ctx context.Context, exec SQLExecutor, id int, totalPoints float64) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE tickets SET total_points = $1 WHERE id = $2`, totalPoints, id)
	if err != nil {
		return fmt.Errorf("failed to update total points for ticket %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTicketNotFound)
}

func (r *postgresTicketRepository) MarkWinner(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE tickets SET is_winner = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark ticket %d as winner: %w", id, err)
	}
	return checkAffectedRows(result, ErrTicketNotFound)
}

func (r *postgresTicketRepository) queryTickets(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]models.Ticket, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]models.Ticket, 0)
	for rows.Next() {
		t, errScan := scanTicket(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", errScan)
		}
		tickets = append(tickets, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	var t models.Ticket
	var teamIDs pq.Int64Array
	err := row.Scan(
		&t.ID, &t.PlayerID, &t.TournamentID, &t.TicketNumber, &t.AccessCode, &teamIDs, &t.Status,
		&t.TotalPoints, &t.IsWinner, &t.PaymentRef, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.TeamIDs = intsFromArray(teamIDs)
	return &t, nil
}

func (r *postgresTicketRepository) handleTicketError(err error) error {
	if err == nil {
		return nil
	}
	if code, constraint, ok := pqErrorCode(err); ok {
		switch code {
		case "23505":
			switch constraint {
			case "tickets_ticket_number_key":
				return ErrTicketNumberConflict
			case "tickets_payment_ref_key":
				return ErrTicketPaymentConflict
			}
		case "23503":
			switch constraint {
			case "tickets_tournament_id_fkey":
				return ErrTicketTournamentInvalid
			case "tickets_player_id_fkey":
				return ErrTicketPlayerInvalid
			}
		}
	}
	return err
}

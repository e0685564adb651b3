package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/ticket-tournament/models"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountEmailConflict = errors.New("account email conflict")
)

// AccountRepository хранит игроков и администраторов. Таблицы players и admins имеют одинаковую схему.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByIDs(ctx context.Context, ids []int) ([]models.Account, error)
	ListRecent(ctx context.Context, limit int) ([]models.Account, error)
}

type postgresAccountRepository struct {
	db    *sql.DB
	table string
	role  models.UserRole
}

func NewPostgresPlayerRepository(db *sql.DB) AccountRepository {
	return &postgresAccountRepository{db: db, table: "players", role: models.RolePlayer}
}

func NewPostgresAdminRepository(db *sql.DB) AccountRepository {
	return &postgresAccountRepository{db: db, table: "admins", role: models.RoleAdmin}
}

func (r *postgresAccountRepository) Create(ctx context.Context, a *models.Account) error {
	query := `
		INSERT INTO ` + r.table + ` (name, email, phone, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, a.Name, a.Email, a.Phone, a.PasswordHash).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if code, constraint, ok := pqErrorCode(err); ok && code == "23505" && constraint == r.table+"_email_key" {
			return ErrAccountEmailConflict
		}
		return err
	}
	a.Role = r.role
	return nil
}

func (r *postgresAccountRepository) GetByID(ctx context.Context, id int) (*models.Account, error) {
	query := `SELECT id, name, email, phone, password_hash, created_at FROM ` + r.table + ` WHERE id = $1`
	return r.getOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT id, name, email, phone, password_hash, created_at FROM ` + r.table + ` WHERE email = $1`
	return r.getOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresAccountRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Account, error) {
	if len(ids) == 0 {
		return []models.Account{}, nil
	}
	query := `SELECT id, name, email, phone, password_hash, created_at FROM ` + r.table + ` WHERE id = ANY($1) ORDER BY id ASC`
	return r.queryAccounts(ctx, query, intArray(ids))
}

func (r *postgresAccountRepository) ListRecent(ctx context.Context, limit int) ([]models.Account, error) {
	query := `SELECT id, name, email, phone, password_hash, created_at FROM ` + r.table + ` ORDER BY created_at DESC, id DESC LIMIT $1`
	return r.queryAccounts(ctx, query, limit)
}

func (r *postgresAccountRepository) getOne(row *sql.Row) (*models.Account, error) {
	a, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to scan %s account: %w", r.role, err)
	}
	return a, nil
}

func (r *postgresAccountRepository) queryAccounts(ctx context.Context, query string, args ...interface{}) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		a, errScan := r.scan(rows)
		if errScan != nil {
			return nil, errScan
		}
		accounts = append(accounts, *a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *postgresAccountRepository) scan(row rowScanner) (*models.Account, error) {
	var a models.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.PasswordHash, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Role = r.role
	return &a, nil
}

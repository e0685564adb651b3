package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/ticket-tournament/models"
	"github.com/Dosada05/ticket-tournament/repositories"
)

const minPasswordLength = 6

type AuthService interface {
	Register(ctx context.Context, role models.UserRole, input RegisterInput) (*models.Account, error)
	Login(ctx context.Context, role models.UserRole, input LoginInput) (*models.Account, error)
}

type RegisterInput struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	playerRepo repositories.AccountRepository
	adminRepo  repositories.AccountRepository
	logger     *slog.Logger
}

func NewAuthService(playerRepo, adminRepo repositories.AccountRepository, logger *slog.Logger) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		playerRepo: playerRepo,
		adminRepo:  adminRepo,
		logger:     logger,
	}
}

func (s *authService) repoFor(role models.UserRole) (repositories.AccountRepository, error) {
	switch role {
	case models.RolePlayer:
		return s.playerRepo, nil
	case models.RoleAdmin:
		return s.adminRepo, nil
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidationFailed, role)
	}
}

func (s *authService) Register(ctx context.Context, role models.UserRole, input RegisterInput) (*models.Account, error) {
	repo, err := s.repoFor(role)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidationFailed)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidationFailed)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	account := &models.Account{
		Role:         role,
		Name:         name,
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: string(hashedPassword),
	}
	if err := repo.Create(ctx, account); err != nil {
		if errors.Is(err, repositories.ErrAccountEmailConflict) {
			return nil, ErrEmailConflict
		}
		return nil, persistenceError("create account", err)
	}

	s.logger.InfoContext(ctx, "account registered", slog.Int("account_id", account.ID), slog.String("role", string(role)))
	account.PasswordHash = ""
	return account, nil
}

func (s *authService) Login(ctx context.Context, role models.UserRole, input LoginInput) (*models.Account, error) {
	repo, err := s.repoFor(role)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidationFailed)
	}

	account, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, persistenceError("find account by email", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	account.PasswordHash = ""
	return account, nil
}

package services

import (
	"errors"
	"fmt"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed   = errors.New("validation failed")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrNoTickets          = fmt.Errorf("%w: no tickets found for this tournament", ErrPreconditionFailed)
	ErrNotEnoughTeams     = fmt.Errorf("%w: tournament does not have enough teams for a ticket", ErrPreconditionFailed)
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Ошибки конфликтов
	ErrEmailConflict          = errors.New("email address is already in use")
	ErrTournamentSlugConflict = errors.New("a tournament with this name already exists")
	ErrTournamentInUse        = errors.New("tournament still has teams, tickets or prizes")
	ErrTeamSeedConflict       = errors.New("seed number already used in this tournament")
	ErrTicketAlreadyIssued    = errors.New("ticket already issued for this payment")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей (могут дублировать ErrNotFound, но дают больше контекста)
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrPrizeNotFound      = errors.New("prize not found")
	ErrAccountNotFound    = errors.New("account not found")

	// Хранилище вернуло ошибку
	ErrPersistence = errors.New("persistence failure")

	ErrStorageNotConfigured = errors.New("object storage is not configured")
	ErrPaymentsDisabled     = errors.New("payment webhook is not configured")
)

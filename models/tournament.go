package models

import "time"

// TournamentStatus представляет статусы турнира.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
)

const (
	DefaultRounds         = 1
	DefaultTeamsPerTicket = 3
)

// Tournament является корневым агрегатом: команды, билеты, очки, лидерборд и призы ссылаются на него.
type Tournament struct {
	ID               int              `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Slug             string           `json:"slug" db:"slug"`
	Status           TournamentStatus `json:"status" db:"status"`
	Rounds           int              `json:"rounds" db:"rounds"`
	TeamsPerTicket   int              `json:"teams_per_ticket" db:"teams_per_ticket"`
	AnnouncementDate *time.Time       `json:"announcement_date,omitempty" db:"announcement_date"`
	CreatedBy        *int             `json:"created_by,omitempty" db:"created_by"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}

func IsValidTournamentStatus(s TournamentStatus) bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return true
	}
	return false
}

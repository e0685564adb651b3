package models

import "time"

type TicketStatus string

const (
	TicketStatusPaid TicketStatus = "paid"
	TicketStatusFree TicketStatus = "free"
)

// Ticket binds a player to a fixed set of teams. TeamIDs never change after creation;
// TotalPoints is derived from the teams' scores and IsWinner is set by prize computation.
type Ticket struct {
	ID           int          `json:"id" db:"id"`
	PlayerID     *int         `json:"player_id,omitempty" db:"player_id"`
	TournamentID int          `json:"tournament_id" db:"tournament_id"`
	TicketNumber string       `json:"ticket_number" db:"ticket_number"`
	AccessCode   string       `json:"access_code" db:"access_code"`
	TeamIDs      []int        `json:"team_ids" db:"team_ids"`
	Status       TicketStatus `json:"status" db:"status"`
	TotalPoints  float64      `json:"total_points" db:"total_points"`
	IsWinner     bool         `json:"is_winner" db:"is_winner"`
	PaymentRef   *string      `json:"payment_ref,omitempty" db:"payment_ref"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`

	Teams  []Team   `json:"teams,omitempty" db:"-"`
	Player *Account `json:"player,omitempty" db:"-"`
}

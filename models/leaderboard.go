package models

import "time"

type LeaderboardEntry struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	TotalPoints  float64   `json:"total_points" db:"total_points"`
	Rank         int       `json:"rank" db:"rank"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Populated by the service for display, not stored.
	Team *Team `json:"team,omitempty" db:"-"`
}

// TicketStanding is one row of the ticket leaderboard. Ranks are computed on read and never stored.
type TicketStanding struct {
	TicketID     int     `json:"ticket_id"`
	TicketNumber string  `json:"ticket_number"`
	PlayerID     *int    `json:"player_id,omitempty"`
	TeamIDs      []int   `json:"team_ids"`
	Teams        []Team  `json:"teams,omitempty"`
	TotalPoints  float64 `json:"total_points"`
	Rank         int     `json:"rank"`
}

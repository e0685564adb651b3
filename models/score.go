package models

import "time"

// Score is the points a team earned in one round. (tournament_id, team_id, round_number) is unique;
// a resubmission overwrites Points.
type Score struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	RoundNumber  int       `json:"round_number" db:"round_number"`
	Points       float64   `json:"points" db:"points"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// TeamTotal is a team's points summed over every round of a tournament.
type TeamTotal struct {
	TeamID      int     `json:"team_id" db:"team_id"`
	TotalPoints float64 `json:"total_points" db:"total_points"`
}

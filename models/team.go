package models

import "time"

type TeamStatus string

const (
	TeamStatusPlaceholder TeamStatus = "placeholder"
	TeamStatusConfirmed   TeamStatus = "confirmed"
)

// Team is a seeded slot in a tournament. The name may be unknown when the seed is created.
type Team struct {
	ID           int        `json:"id" db:"id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	SeedNumber   string     `json:"seed_number" db:"seed_number"`
	TeamName     *string    `json:"team_name,omitempty" db:"team_name"`
	Status       TeamStatus `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// DisplayName returns the team name, falling back to the seed label.
func (t Team) DisplayName() string {
	if t.TeamName != nil && *t.TeamName != "" {
		return *t.TeamName
	}
	return t.SeedNumber
}

// StatusForName: команда без имени остаётся заглушкой.
func StatusForName(name *string) TeamStatus {
	if name != nil && *name != "" {
		return TeamStatusConfirmed
	}
	return TeamStatusPlaceholder
}

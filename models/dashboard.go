package models

// DashboardRecent собирает последние записи для главной страницы админки.
type DashboardRecent struct {
	Players     []Account    `json:"players,omitempty"`
	Tickets     []Ticket     `json:"tickets,omitempty"`
	Tournaments []Tournament `json:"tournaments,omitempty"`
}

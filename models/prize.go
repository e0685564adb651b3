package models

import (
	"strconv"
	"time"
)

// PrizeType is the admin-facing name of a winner selection policy.
type PrizeType string

const (
	PrizeHighest       PrizeType = "highest"
	PrizeLowest        PrizeType = "lowest"
	PrizeSecondHighest PrizeType = "secondHighest"
)

// PrizeRule is the closed set of selection policies a PrizeType resolves to.
// Any unrecognised type resolves to RuleOther, which selects like RuleHighest.
type PrizeRule int

const (
	RuleHighest PrizeRule = iota
	RuleLowest
	RuleSecondHighest
	RuleOther
)

func (t PrizeType) Rule() PrizeRule {
	switch t {
	case PrizeHighest:
		return RuleHighest
	case PrizeLowest:
		return RuleLowest
	case PrizeSecondHighest:
		return RuleSecondHighest
	default:
		return RuleOther
	}
}

func (r PrizeRule) String() string {
	switch r {
	case RuleHighest:
		return "highest"
	case RuleLowest:
		return "lowest"
	case RuleSecondHighest:
		return "secondHighest"
	default:
		return "other"
	}
}

type Prize struct {
	ID              int       `json:"id" db:"id"`
	TournamentID    int       `json:"tournament_id" db:"tournament_id"`
	PrizeType       PrizeType `json:"prize_type" db:"prize_type"`
	Amount          *float64  `json:"amount,omitempty" db:"amount"`
	Item            *string   `json:"item,omitempty" db:"item"`
	WinnerTicketIDs []int     `json:"winner_ticket_ids" db:"winner_ticket_ids"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	// Winners is resolved from WinnerTicketIDs on read.
	Winners []Ticket `json:"winners,omitempty" db:"-"`
}

// PayoutDescription is what the winner notification shows as the prize.
func (p Prize) PayoutDescription() string {
	if p.Amount != nil {
		return formatAmount(*p.Amount)
	}
	if p.Item != nil && *p.Item != "" {
		return *p.Item
	}
	return "See admin"
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

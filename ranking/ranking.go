// Package ranking holds the pure ordering rules shared by the leaderboard and prize engines.
package ranking

import (
	"sort"

	"github.com/Dosada05/ticket-tournament/models"
)

// RankTeams orders team totals by points descending and assigns ranks 1..N.
// Ties keep the input order, so callers control tie-breaking by the order they pass in.
func RankTeams(tournamentID int, totals []models.TeamTotal) []*models.LeaderboardEntry {
	sorted := make([]models.TeamTotal, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPoints > sorted[j].TotalPoints
	})

	entries := make([]*models.LeaderboardEntry, len(sorted))
	for i, t := range sorted {
		entries[i] = &models.LeaderboardEntry{
			TournamentID: tournamentID,
			TeamID:       t.TeamID,
			TotalPoints:  t.TotalPoints,
			Rank:         i + 1,
		}
	}
	return entries
}

// RankTickets orders tickets by total points descending, stable on input order.
func RankTickets(tickets []models.Ticket) []models.TicketStanding {
	sorted := sortTicketsDesc(tickets)
	standings := make([]models.TicketStanding, len(sorted))
	for i, t := range sorted {
		standings[i] = models.TicketStanding{
			TicketID:     t.ID,
			TicketNumber: t.TicketNumber,
			PlayerID:     t.PlayerID,
			TeamIDs:      t.TeamIDs,
			Teams:        t.Teams,
			TotalPoints:  t.TotalPoints,
			Rank:         i + 1,
		}
	}
	return standings
}

// SumTotals adds up per-team totals.
func SumTotals(totals []models.TeamTotal) float64 {
	var sum float64
	for _, t := range totals {
		sum += t.TotalPoints
	}
	return sum
}

// WinningValue returns the total a ticket must have to win under rule.
// ok is false when there are no tickets.
func WinningValue(rule models.PrizeRule, tickets []models.Ticket) (value float64, ok bool) {
	if len(tickets) == 0 {
		return 0, false
	}
	sorted := sortTicketsDesc(tickets)

	switch rule {
	case models.RuleHighest:
		return sorted[0].TotalPoints, true
	case models.RuleLowest:
		return sorted[len(sorted)-1].TotalPoints, true
	case models.RuleSecondHighest:
		// позиционно: второй билет в отсортированном списке, даже если он равен первому
		if len(sorted) > 1 {
			return sorted[1].TotalPoints, true
		}
		return sorted[0].TotalPoints, true
	case models.RuleOther:
		return sorted[0].TotalPoints, true
	}
	return 0, false
}

// SelectWinners returns the ids of every ticket whose total equals the winning value for rule,
// in input order.
func SelectWinners(rule models.PrizeRule, tickets []models.Ticket) []int {
	value, ok := WinningValue(rule, tickets)
	if !ok {
		return []int{}
	}
	winners := make([]int, 0)
	for _, t := range tickets {
		if t.TotalPoints == value {
			winners = append(winners, t.ID)
		}
	}
	return winners
}

func sortTicketsDesc(tickets []models.Ticket) []models.Ticket {
	sorted := make([]models.Ticket, len(tickets))
	copy(sorted, tickets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPoints > sorted[j].TotalPoints
	})
	return sorted
}

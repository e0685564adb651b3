package handlers

import (
	"net/http"

	"github.com/Dosada05/ticket-tournament/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(ls services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

// RebuildHandler godoc
// @Summary Перестроить лидерборд команд
// @Tags leaderboard
// @Accept json
// @Produce json
// @Param body body tournamentRequest true "Турнир"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /leaderboard/rebuild [post]
func (h *LeaderboardHandler) RebuildHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := tournamentIDFromRequest(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ranked, err := h.leaderboardService.RebuildLeaderboard(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"message": "leaderboard rebuilt", "teams_ranked": ranked}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecomputeHandler godoc
// @Summary Пересчитать суммы очков всех билетов турнира
// @Tags leaderboard
// @Accept json
// @Produce json
// @Param body body tournamentRequest true "Турнир"
// @Success 200 {object} map[string]string
// @Router /leaderboard/recompute [post]
func (h *LeaderboardHandler) RecomputeHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := tournamentIDFromRequest(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.leaderboardService.RecomputeTicketTotals(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "ticket totals recomputed"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler godoc
// @Summary Лидерборд команд
// @Tags leaderboard
// @Produce json
// @Param tournament_id query int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requireQueryID(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.leaderboardService.GetLeaderboard(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TicketsHandler godoc
// @Summary Лидерборд билетов
// @Tags leaderboard
// @Produce json
// @Param tournament_id query int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /leaderboard/tickets [get]
func (h *LeaderboardHandler) TicketsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requireQueryID(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.leaderboardService.GetTicketLeaderboard(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tickets": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

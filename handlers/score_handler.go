package handlers

import (
	"net/http"

	"github.com/Dosada05/ticket-tournament/services"
)

type ScoreHandler struct {
	leaderboardService services.LeaderboardService
}

func NewScoreHandler(ls services.LeaderboardService) *ScoreHandler {
	return &ScoreHandler{leaderboardService: ls}
}

// RecordHandler godoc
// @Summary Записать очки команды за раунд
// @Description Повторная запись за тот же раунд перезаписывает очки. После записи пересчитываются
// @Description суммы билетов и лидерборд турнира.
// @Tags scores
// @Accept json
// @Produce json
// @Param body body services.RecordScoreInput true "Очки"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /scores [post]
func (h *ScoreHandler) RecordHandler(w http.ResponseWriter, r *http.Request) {
	var input services.RecordScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	score, err := h.leaderboardService.RecordScore(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"score": score}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler godoc
// @Summary Очки турнира по раундам
// @Tags scores
// @Produce json
// @Param tournament_id query int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Router /scores [get]
func (h *ScoreHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requireQueryID(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scores, err := h.leaderboardService.ListScores(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"scores": scores}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/Dosada05/ticket-tournament/services"
)

type PrizeHandler struct {
	prizeService services.PrizeService
}

func NewPrizeHandler(ps services.PrizeService) *PrizeHandler {
	return &PrizeHandler{prizeService: ps}
}

// CreateHandler godoc
// @Summary Создать приз
// @Description prize_type: highest, lowest, secondHighest. Любой другой тип выбирает победителей как highest.
// @Tags prizes
// @Accept json
// @Produce json
// @Param body body services.CreatePrizeInput true "Приз"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /prizes [post]
func (h *PrizeHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePrizeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	prize, err := h.prizeService.CreatePrize(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"prize": prize}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ComputeHandler godoc
// @Summary Определить победителей всех призов турнира
// @Tags prizes
// @Accept json
// @Produce json
// @Param body body tournamentRequest true "Турнир"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Нет билетов"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /prizes/compute [post]
func (h *PrizeHandler) ComputeHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := tournamentIDFromRequest(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	processed, err := h.prizeService.ComputePrizes(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"message": "prizes computed", "prizes_processed": processed}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PrizeHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requireQueryID(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	prizes, err := h.prizeService.ListPrizes(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"prizes": prizes}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/ticket-tournament/middleware"
	"github.com/Dosada05/ticket-tournament/repositories"
	"github.com/Dosada05/ticket-tournament/services"
)

type TicketHandler struct {
	ticketService services.TicketService
}

func NewTicketHandler(ts services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ts}
}

// GetOwnHandler godoc
// @Summary Билет текущего игрока
// @Tags tickets
// @Produce json
// @Param ticketID path int true "Ticket ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Билет принадлежит другому игроку"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tickets/{ticketID} [get]
func (h *TicketHandler) GetOwnHandler(w http.ResponseWriter, r *http.Request) {
	ticketID, err := getIDFromURL(r, "ticketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	ticket, err := h.ticketService.GetTicket(r.Context(), ticketID, &playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ticket": ticket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// IssueHandler выдаёт билет вручную (например, бесплатный).
func (h *TicketHandler) IssueHandler(w http.ResponseWriter, r *http.Request) {
	var input services.IssueTicketInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ticket, err := h.ticketService.IssueTicket(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"ticket": ticket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /tickets?tournament_id=&player_id=&limit=
func (h *TicketHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListTicketsFilter
	var err error

	if filter.TournamentID, err = getQueryID(r, "tournament_id"); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if filter.PlayerID, err = getQueryID(r, "player_id"); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			badRequestResponse(w, r, errors.New("invalid limit query parameter"))
			return
		}
		filter.Limit = limit
	}

	tickets, err := h.ticketService.ListTickets(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tickets": tickets}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TicketHandler) ExportCSVHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requireQueryID(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(tournamentID, "csv"))
	if err := h.ticketService.ExportCSV(r.Context(), tournamentID, w); err != nil {
		// ошибки чтения случаются до первой записи в w, так что JSON-ответ ещё можно отправить
		w.Header().Del("Content-Disposition")
		mapServiceErrorToHTTP(w, r, err)
	}
}

func (h *TicketHandler) ExportXLSXHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requireQueryID(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment(tournamentID, "xlsx"))
	if err := h.ticketService.ExportXLSX(r.Context(), tournamentID, w); err != nil {
		w.Header().Del("Content-Disposition")
		mapServiceErrorToHTTP(w, r, err)
	}
}

// ArchiveHandler godoc
// @Summary Выгрузить CSV билетов в объектное хранилище
// @Tags tickets
// @Accept json
// @Produce json
// @Param body body tournamentRequest true "Турнир"
// @Success 201 {object} storage.UploadResult
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Router /tickets/export/archive [post]
func (h *TicketHandler) ArchiveHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := tournamentIDFromRequest(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.ticketService.ArchiveExport(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"archive": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func attachment(tournamentID int, ext string) string {
	return fmt.Sprintf(`attachment; filename="tickets-%d-%s.%s"`, tournamentID, time.Now().UTC().Format("20060102"), ext)
}

package handlers

import (
	"net/http"

	"github.com/Dosada05/ticket-tournament/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: s}
}

func (h *DashboardHandler) RecentPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.dashboardService.RecentPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) RecentTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.dashboardService.RecentTickets(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tickets": tickets}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) RecentTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.dashboardService.RecentTournaments(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Recent отдаёт все три списка одним запросом.
func (h *DashboardHandler) Recent(w http.ResponseWriter, r *http.Request) {
	recent, err := h.dashboardService.Recent(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, recent, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

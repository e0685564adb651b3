package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Dosada05/ticket-tournament/services"
)

// Stripe рекомендует не принимать тела больше 64KB.
const maxWebhookBodyBytes = 65536

type WebhookHandler struct {
	paymentService services.PaymentService
}

func NewWebhookHandler(ps services.PaymentService) *WebhookHandler {
	return &WebhookHandler{paymentService: ps}
}

// StripeHandler godoc
// @Summary Stripe webhook
// @Description Проверяет подпись Stripe-Signature. checkout.session.completed выдаёт оплаченный билет.
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) StripeHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		badRequestResponse(w, r, errors.New("failed to read webhook body"))
		return
	}

	ticket, err := h.paymentService.HandleStripeWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"received": true}
	if ticket != nil {
		response["ticket_id"] = ticket.ID
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

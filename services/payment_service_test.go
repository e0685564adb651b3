package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/Dosada05/ticket-tournament/models"
)

const testWebhookSecret = "whsec_test_secret"

func stripeEvent(t *testing.T, eventType string, sessionID string, metadata map[string]string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"id":          "evt_test",
		"object":      "event",
		"api_version": "2023-10-16",
		"type":        eventType,
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":       sessionID,
				"object":   "checkout.session",
				"metadata": metadata,
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func sign(payload []byte) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	return signed.Header
}

func newPaymentFixture() (PaymentService, *ticketFixture) {
	tf := newTicketFixture()
	return NewPaymentService(testWebhookSecret, tf.svc, discardLogger()), tf
}

func TestHandleStripeWebhook_IssuesTicket(t *testing.T) {
	svc, tf := newPaymentFixture()
	payload := stripeEvent(t, "checkout.session.completed", "cs_test_1", map[string]string{
		"playerId": "7", "tournament_id": "1", "teams_per_ticket": "2",
	})

	ticket, err := svc.HandleStripeWebhook(context.Background(), payload, sign(payload))
	require.NoError(t, err)
	require.NotNil(t, ticket)
	assert.Equal(t, models.TicketStatusPaid, ticket.Status)
	require.NotNil(t, ticket.PaymentRef)
	assert.Equal(t, "cs_test_1", *ticket.PaymentRef)
	assert.Len(t, ticket.TeamIDs, 2)

	// повторная доставка того же события не создаёт второй билет
	again, err := svc.HandleStripeWebhook(context.Background(), payload, sign(payload))
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.Len(t, tf.tickets.Snapshot(), 1)
}

func TestHandleStripeWebhook_IgnoresOtherEvents(t *testing.T) {
	svc, tf := newPaymentFixture()
	payload := stripeEvent(t, "checkout.session.expired", "cs_test_2", map[string]string{"player_id": "7", "tournament_id": "1"})

	ticket, err := svc.HandleStripeWebhook(context.Background(), payload, sign(payload))
	require.NoError(t, err)
	assert.Nil(t, ticket)
	assert.Empty(t, tf.tickets.Snapshot())
}

func TestHandleStripeWebhook_Rejects(t *testing.T) {
	svc, _ := newPaymentFixture()
	payload := stripeEvent(t, "checkout.session.completed", "cs_test_3", map[string]string{"player_id": "7", "tournament_id": "1"})

	_, err := svc.HandleStripeWebhook(context.Background(), payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrInvalidWebhookSignature)

	missing := stripeEvent(t, "checkout.session.completed", "cs_test_4", map[string]string{"player_id": "7"})
	_, err = svc.HandleStripeWebhook(context.Background(), missing, sign(missing))
	assert.ErrorIs(t, err, ErrValidationFailed)

	bad := stripeEvent(t, "checkout.session.completed", "cs_test_5", map[string]string{"player_id": "x", "tournament_id": "1"})
	_, err = svc.HandleStripeWebhook(context.Background(), bad, sign(bad))
	assert.ErrorIs(t, err, ErrValidationFailed)

	disabled := NewPaymentService("", nil, discardLogger())
	_, err = disabled.HandleStripeWebhook(context.Background(), payload, sign(payload))
	assert.ErrorIs(t, err, ErrPaymentsDisabled)
}

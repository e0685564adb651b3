package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/Dosada05/ticket-tournament/models"
)

var ErrInvalidWebhookSignature = fmt.Errorf("%w: invalid webhook signature", ErrValidationFailed)

type PaymentService interface {
	// HandleStripeWebhook verifies the event and issues a ticket for a completed checkout session.
	// It returns a nil ticket for events that do not issue one, including repeated deliveries.
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*models.Ticket, error)
}

type paymentService struct {
	webhookSecret string
	tickets       TicketService
	logger        *slog.Logger
}

func NewPaymentService(webhookSecret string, tickets TicketService, logger *slog.Logger) PaymentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &paymentService{webhookSecret: webhookSecret, tickets: tickets, logger: logger}
}

func (s *paymentService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*models.Ticket, error) {
	if s.webhookSecret == "" {
		return nil, ErrPaymentsDisabled
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "stripe webhook rejected", slog.Any("error", err))
		return nil, ErrInvalidWebhookSignature
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		s.logger.DebugContext(ctx, "stripe event ignored", slog.String("type", string(event.Type)))
		return nil, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: malformed checkout session: %v", ErrValidationFailed, err)
	}

	input, err := issueInputFromMetadata(session.Metadata)
	if err != nil {
		return nil, err
	}
	ref := session.ID
	input.PaymentRef = &ref
	input.Status = models.TicketStatusPaid

	ticket, err := s.tickets.IssueTicket(ctx, input)
	if err != nil {
		if errors.Is(err, ErrTicketAlreadyIssued) {
			s.logger.InfoContext(ctx, "stripe session already processed", slog.String("session_id", ref))
			return nil, nil
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "ticket issued after payment", slog.String("session_id", ref), slog.Int("ticket_id", ticket.ID))
	return ticket, nil
}

// issueInputFromMetadata читает player_id, tournament_id и необязательный teams_per_ticket.
// Также принимаются ключи в camelCase, которые проставляет фронтенд.
func issueInputFromMetadata(md map[string]string) (IssueTicketInput, error) {
	var input IssueTicketInput

	playerID, err := metadataInt(md, "player_id", "playerId")
	if err != nil {
		return input, err
	}
	tournamentID, err := metadataInt(md, "tournament_id", "tournamentId")
	if err != nil {
		return input, err
	}
	if playerID == nil || tournamentID == nil {
		return input, fmt.Errorf("%w: session metadata must carry player_id and tournament_id", ErrValidationFailed)
	}
	perTicket, err := metadataInt(md, "teams_per_ticket", "teamsPerTicket")
	if err != nil {
		return input, err
	}

	input.PlayerID = playerID
	input.TournamentID = tournamentID
	input.TeamsPerTicket = perTicket
	return input, nil
}

func metadataInt(md map[string]string, keys ...string) (*int, error) {
	for _, k := range keys {
		raw, ok := md[k]
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%w: metadata %s must be a positive integer", ErrValidationFailed, k)
		}
		return &v, nil
	}
	return nil, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/ticket-tournament/metrics"
	"github.com/Dosada05/ticket-tournament/models"
	"github.com/Dosada05/ticket-tournament/ranking"
	"github.com/Dosada05/ticket-tournament/repositories"
)

// Notifier доставляет письмо одному получателю.
type Notifier interface {
	Notify(ctx context.Context, email, subject, body string) error
}

type CreatePrizeInput struct {
	TournamentID *int     `json:"tournament_id"`
	PrizeType    string   `json:"prize_type"`
	Amount       *float64 `json:"amount,omitempty"`
	Item         *string  `json:"item,omitempty"`
}

type PrizeService interface {
	CreatePrize(ctx context.Context, input CreatePrizeInput) (*models.Prize, error)
	// ComputePrizes selects winners for every prize of the tournament and returns how many prizes were processed.
	ComputePrizes(ctx context.Context, tournamentID int) (int, error)
	ListPrizes(ctx context.Context, tournamentID int) ([]*models.Prize, error)
}

type prizeService struct {
	tournamentRepo repositories.TournamentRepository
	ticketRepo     repositories.TicketRepository
	prizeRepo      repositories.PrizeRepository
	playerRepo     repositories.AccountRepository
	notifier       Notifier
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

func NewPrizeService(
	tournamentRepo repositories.TournamentRepository,
	ticketRepo repositories.TicketRepository,
	prizeRepo repositories.PrizeRepository,
	playerRepo repositories.AccountRepository,
	notifier Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) PrizeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &prizeService{
		tournamentRepo: tournamentRepo,
		ticketRepo:     ticketRepo,
		prizeRepo:      prizeRepo,
		playerRepo:     playerRepo,
		notifier:       notifier,
		metrics:        m,
		logger:         logger,
	}
}

func (s *prizeService) CreatePrize(ctx context.Context, input CreatePrizeInput) (*models.Prize, error) {
	prizeType := strings.TrimSpace(input.PrizeType)
	if input.TournamentID == nil || *input.TournamentID <= 0 || prizeType == "" {
		return nil, fmt.Errorf("%w: tournament_id and prize_type are required", ErrValidationFailed)
	}
	if input.Amount != nil && *input.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrValidationFailed)
	}

	if _, err := getTournament(ctx, s.tournamentRepo, *input.TournamentID); err != nil {
		return nil, err
	}

	prize := &models.Prize{
		TournamentID:    *input.TournamentID,
		PrizeType:       models.PrizeType(prizeType),
		Amount:          input.Amount,
		Item:            input.Item,
		WinnerTicketIDs: []int{},
	}
	if err := s.prizeRepo.Create(ctx, prize); err != nil {
		if errors.Is(err, repositories.ErrPrizeTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, persistenceError("create prize", err)
	}

	s.logger.InfoContext(ctx, "prize created",
		slog.Int("prize_id", prize.ID),
		slog.Int("tournament_id", prize.TournamentID),
		slog.String("prize_type", string(prize.PrizeType)),
	)
	return prize, nil
}

func (s *prizeService) ComputePrizes(ctx context.Context, tournamentID int) (int, error) {
	if tournamentID <= 0 {
		return 0, fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	tournament, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return 0, err
	}

	tickets, err := s.ticketRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return 0, persistenceError("list tickets", err)
	}
	if len(tickets) == 0 {
		return 0, ErrNoTickets
	}

	prizes, err := s.prizeRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return 0, persistenceError("list prizes", err)
	}

	byID := make(map[int]models.Ticket, len(tickets))
	for _, t := range tickets {
		byID[t.ID] = t
	}

	for _, prize := range prizes {
		// Каждый приз считается независимо по полному набору билетов
		rule := prize.PrizeType.Rule()
		winners := ranking.SelectWinners(rule, tickets)

		prize.WinnerTicketIDs = winners
		if err := s.prizeRepo.Save(ctx, nil, prize); err != nil {
			return 0, persistenceError(fmt.Sprintf("save winners for prize %d", prize.ID), err)
		}

		for _, ticketID := range winners {
			if err := s.ticketRepo.MarkWinner(ctx, nil, ticketID); err != nil {
				return 0, persistenceError(fmt.Sprintf("mark ticket %d as winner", ticketID), err)
			}
			s.notifyWinner(ctx, tournament, prize, byID[ticketID])
		}

		s.metrics.PrizeComputed(rule.String())
		s.logger.InfoContext(ctx, "prize winners selected",
			slog.Int("prize_id", prize.ID),
			slog.String("rule", rule.String()),
			slog.Int("winners", len(winners)),
		)
	}

	return len(prizes), nil
}

// notifyWinner never fails the computation: delivery problems are only logged.
func (s *prizeService) notifyWinner(ctx context.Context, tournament *models.Tournament, prize *models.Prize, ticket models.Ticket) {
	if s.notifier == nil || s.playerRepo == nil || ticket.PlayerID == nil {
		return
	}
	log := s.logger.With(slog.Int("ticket_id", ticket.ID), slog.Int("prize_id", prize.ID))

	player, err := s.playerRepo.GetByID(ctx, *ticket.PlayerID)
	if err != nil {
		s.metrics.NotificationFailed()
		log.WarnContext(ctx, "winner notification skipped: player lookup failed", slog.Any("error", err))
		return
	}

	body, err := RenderWinnerEmail(WinnerEmailData{
		PlayerName:     player.Name,
		TournamentName: tournament.Name,
		TicketNumber:   ticket.TicketNumber,
		TotalPoints:    ticket.TotalPoints,
		Payout:         prize.PayoutDescription(),
	})
	if err != nil {
		s.metrics.NotificationFailed()
		log.WarnContext(ctx, "winner notification skipped: template failed", slog.Any("error", err))
		return
	}

	subject := fmt.Sprintf("You won a prize in %s!", tournament.Name)
	if err := s.notifier.Notify(ctx, player.Email, subject, body); err != nil {
		s.metrics.NotificationFailed()
		log.WarnContext(ctx, "winner notification failed", slog.String("email", player.Email), slog.Any("error", err))
	}
}

func (s *prizeService) ListPrizes(ctx context.Context, tournamentID int) ([]*models.Prize, error) {
	if tournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	prizes, err := s.prizeRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, persistenceError("list prizes", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, prize := range prizes {
		prize := prize
		if len(prize.WinnerTicketIDs) == 0 {
			prize.Winners = []models.Ticket{}
			continue
		}
		g.Go(func() error {
			winners, err := s.ticketRepo.GetByIDs(gCtx, nil, prize.WinnerTicketIDs)
			if err != nil {
				return fmt.Errorf("resolve winners for prize %d: %w", prize.ID, err)
			}
			prize.Winners = winners
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, persistenceError("list prizes", err)
	}

	s.attachPlayers(ctx, prizes)
	return prizes, nil
}

func (s *prizeService) attachPlayers(ctx context.Context, prizes []*models.Prize) {
	if s.playerRepo == nil {
		return
	}
	ids := make([]int, 0)
	seen := make(map[int]struct{})
	for _, p := range prizes {
		for _, w := range p.Winners {
			if w.PlayerID == nil {
				continue
			}
			if _, ok := seen[*w.PlayerID]; !ok {
				seen[*w.PlayerID] = struct{}{}
				ids = append(ids, *w.PlayerID)
			}
		}
	}
	if len(ids) == 0 {
		return
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to resolve prize winner players", slog.Any("error", err))
		return
	}
	byID := make(map[int]models.Account, len(players))
	for _, p := range players {
		p.PasswordHash = ""
		byID[p.ID] = p
	}
	for _, prize := range prizes {
		for i := range prize.Winners {
			if pid := prize.Winners[i].PlayerID; pid != nil {
				if player, ok := byID[*pid]; ok {
					player := player
					prize.Winners[i].Player = &player
				}
			}
		}
	}
}

package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/ticket-tournament/models"
	"github.com/Dosada05/ticket-tournament/repositories"
)

const dashboardRecentLimit = 5

type DashboardService interface {
	RecentPlayers(ctx context.Context) ([]models.Account, error)
	RecentTickets(ctx context.Context) ([]models.Ticket, error)
	RecentTournaments(ctx context.Context) ([]models.Tournament, error)
	// Recent loads all three lists concurrently.
	Recent(ctx context.Context) (*models.DashboardRecent, error)
}

type dashboardService struct {
	playerRepo     repositories.AccountRepository
	ticketRepo     repositories.TicketRepository
	tournamentRepo repositories.TournamentRepository
}

func NewDashboardService(
	playerRepo repositories.AccountRepository,
	ticketRepo repositories.TicketRepository,
	tournamentRepo repositories.TournamentRepository,
) DashboardService {
	return &dashboardService{
		playerRepo:     playerRepo,
		ticketRepo:     ticketRepo,
		tournamentRepo: tournamentRepo,
	}
}

func (s *dashboardService) RecentPlayers(ctx context.Context) ([]models.Account, error) {
	players, err := s.playerRepo.ListRecent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, persistenceError("recent players", err)
	}
	for i := range players {
		players[i].PasswordHash = ""
	}
	return players, nil
}

func (s *dashboardService) RecentTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets, err := s.ticketRepo.ListRecent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, persistenceError("recent tickets", err)
	}
	return tickets, nil
}

func (s *dashboardService) RecentTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{Limit: dashboardRecentLimit})
	if err != nil {
		return nil, persistenceError("recent tournaments", err)
	}
	return tournaments, nil
}

func (s *dashboardService) Recent(ctx context.Context) (*models.DashboardRecent, error) {
	var out models.DashboardRecent
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		players, err := s.RecentPlayers(gCtx)
		out.Players = players
		return err
	})
	g.Go(func() error {
		tickets, err := s.RecentTickets(gCtx)
		out.Tickets = tickets
		return err
	})
	g.Go(func() error {
		tournaments, err := s.RecentTournaments(gCtx)
		out.Tournaments = tournaments
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

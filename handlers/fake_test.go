package handlers

import (
	"context"
	"io"

	"github.com/Dosada05/ticket-tournament/models"
	"github.com/Dosada05/ticket-tournament/repositories"
	"github.com/Dosada05/ticket-tournament/services"
	"github.com/Dosada05/ticket-tournament/storage"
)

// FakeLeaderboardService is a programmable services.LeaderboardService.
type FakeLeaderboardService struct {
	RecordScoreFunc           func(ctx context.Context, input services.RecordScoreInput) (*models.Score, error)
	RecomputeTicketTotalsFunc func(ctx context.Context, tournamentID int) error
	RebuildLeaderboardFunc    func(ctx context.Context, tournamentID int) (int, error)
	GetLeaderboardFunc        func(ctx context.Context, tournamentID int) ([]*models.LeaderboardEntry, error)
	GetTicketLeaderboardFunc  func(ctx context.Context, tournamentID int) ([]models.TicketStanding, error)
	ListScoresFunc            func(ctx context.Context, tournamentID int) ([]models.Score, error)
}

func (f *FakeLeaderboardService) RecordScore(ctx context.Context, input services.RecordScoreInput) (*models.Score, error) {
	if f.RecordScoreFunc != nil {
		return f.RecordScoreFunc(ctx, input)
	}
	return &models.Score{}, nil
}

func (f *FakeLeaderboardService) RecomputeTicketTotals(ctx context.Context, tournamentID int) error {
	if f.RecomputeTicketTotalsFunc != nil {
		return f.RecomputeTicketTotalsFunc(ctx, tournamentID)
	}
	return nil
}

func (f *FakeLeaderboardService) RebuildLeaderboard(ctx context.Context, tournamentID int) (int, error) {
	if f.RebuildLeaderboardFunc != nil {
		return f.RebuildLeaderboardFunc(ctx, tournamentID)
	}
	return 0, nil
}

func (f *FakeLeaderboardService) GetLeaderboard(ctx context.Context, tournamentID int) ([]*models.LeaderboardEntry, error) {
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, tournamentID)
	}
	return []*models.LeaderboardEntry{}, nil
}

func (f *FakeLeaderboardService) GetTicketLeaderboard(ctx context.Context, tournamentID int) ([]models.TicketStanding, error) {
	if f.GetTicketLeaderboardFunc != nil {
		return f.GetTicketLeaderboardFunc(ctx, tournamentID)
	}
	return []models.TicketStanding{}, nil
}

func (f *FakeLeaderboardService) ListScores(ctx context.Context, tournamentID int) ([]models.Score, error) {
	if f.ListScoresFunc != nil {
		return f.ListScoresFunc(ctx, tournamentID)
	}
	return []models.Score{}, nil
}

var _ services.LeaderboardService = (*FakeLeaderboardService)(nil)

type FakePrizeService struct {
	CreatePrizeFunc   func(ctx context.Context, input services.CreatePrizeInput) (*models.Prize, error)
	ComputePrizesFunc func(ctx context.Context, tournamentID int) (int, error)
	ListPrizesFunc    func(ctx context.Context, tournamentID int) ([]*models.Prize, error)
}

func (f *FakePrizeService) CreatePrize(ctx context.Context, input services.CreatePrizeInput) (*models.Prize, error) {
	if f.CreatePrizeFunc != nil {
		return f.CreatePrizeFunc(ctx, input)
	}
	return &models.Prize{}, nil
}

func (f *FakePrizeService) ComputePrizes(ctx context.Context, tournamentID int) (int, error) {
	if f.ComputePrizesFunc != nil {
		return f.ComputePrizesFunc(ctx, tournamentID)
	}
	return 0, nil
}

func (f *FakePrizeService) ListPrizes(ctx context.Context, tournamentID int) ([]*models.Prize, error) {
	if f.ListPrizesFunc != nil {
		return f.ListPrizesFunc(ctx, tournamentID)
	}
	return []*models.Prize{}, nil
}

var _ services.PrizeService = (*FakePrizeService)(nil)

type FakeTicketService struct {
	IssueTicketFunc   func(ctx context.Context, input services.IssueTicketInput) (*models.Ticket, error)
	GetTicketFunc     func(ctx context.Context, id int, ownerID *int) (*models.Ticket, error)
	ListTicketsFunc   func(ctx context.Context, filter repositories.ListTicketsFilter) ([]models.Ticket, error)
	ExportCSVFunc     func(ctx context.Context, tournamentID int, w io.Writer) error
	ExportXLSXFunc    func(ctx context.Context, tournamentID int, w io.Writer) error
	ArchiveExportFunc func(ctx context.Context, tournamentID int) (*storage.UploadResult, error)
}

func (f *FakeTicketService) IssueTicket(ctx context.Context, input services.IssueTicketInput) (*models.Ticket, error) {
	if f.IssueTicketFunc != nil {
		return f.IssueTicketFunc(ctx, input)
	}
	return &models.Ticket{}, nil
}

func (f *FakeTicketService) GetTicket(ctx context.Context, id int, ownerID *int) (*models.Ticket, error) {
	if f.GetTicketFunc != nil {
		return f.GetTicketFunc(ctx, id, ownerID)
	}
	return &models.Ticket{ID: id}, nil
}

func (f *FakeTicketService) ListTickets(ctx context.Context, filter repositories.ListTicketsFilter) ([]models.Ticket, error) {
	if f.ListTicketsFunc != nil {
		return f.ListTicketsFunc(ctx, filter)
	}
	return []models.Ticket{}, nil
}

func (f *FakeTicketService) ExportCSV(ctx context.Context, tournamentID int, w io.Writer) error {
	if f.ExportCSVFunc != nil {
		return f.ExportCSVFunc(ctx, tournamentID, w)
	}
	return nil
}

func (f *FakeTicketService) ExportXLSX(ctx context.Context, tournamentID int, w io.Writer) error {
	if f.ExportXLSXFunc != nil {
		return f.ExportXLSXFunc(ctx, tournamentID, w)
	}
	return nil
}

func (f *FakeTicketService) ArchiveExport(ctx context.Context, tournamentID int) (*storage.UploadResult, error) {
	if f.ArchiveExportFunc != nil {
		return f.ArchiveExportFunc(ctx, tournamentID)
	}
	return &storage.UploadResult{}, nil
}

var _ services.TicketService = (*FakeTicketService)(nil)

type FakeAuthService struct {
	RegisterFunc func(ctx context.Context, role models.UserRole, input services.RegisterInput) (*models.Account, error)
	LoginFunc    func(ctx context.Context, role models.UserRole, input services.LoginInput) (*models.Account, error)
}

func (f *FakeAuthService) Register(ctx context.Context, role models.UserRole, input services.RegisterInput) (*models.Account, error) {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, role, input)
	}
	return &models.Account{ID: 1, Role: role, Name: input.Name, Email: input.Email}, nil
}

func (f *FakeAuthService) Login(ctx context.Context, role models.UserRole, input services.LoginInput) (*models.Account, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, role, input)
	}
	return &models.Account{ID: 1, Role: role, Email: input.Email}, nil
}

var _ services.AuthService = (*FakeAuthService)(nil)

type FakePaymentService struct {
	HandleStripeWebhookFunc func(ctx context.Context, payload []byte, signature string) (*models.Ticket, error)
}

func (f *FakePaymentService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*models.Ticket, error) {
	if f.HandleStripeWebhookFunc != nil {
		return f.HandleStripeWebhookFunc(ctx, payload, signature)
	}
	return nil, nil
}

var _ services.PaymentService = (*FakePaymentService)(nil)

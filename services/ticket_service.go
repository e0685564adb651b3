package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"

	"github.com/Dosada05/ticket-tournament/metrics"
	"github.com/Dosada05/ticket-tournament/models"
	"github.com/Dosada05/ticket-tournament/repositories"
	"github.com/Dosada05/ticket-tournament/storage"
)

const (
	ticketNumberLength = 8
	accessCodeLength   = 12
	ticketNumberTries  = 3
)

var exportHeader = []string{"ticket_number", "access_code", "player_id", "status", "total_points", "is_winner", "teams"}

// IssueTicketInput: TeamsPerTicket по умолчанию берётся из турнира.
type IssueTicketInput struct {
	TournamentID   *int                `json:"tournament_id"`
	PlayerID       *int                `json:"player_id,omitempty"`
	TeamsPerTicket *int                `json:"teams_per_ticket,omitempty"`
	Status         models.TicketStatus `json:"status,omitempty"`
	PaymentRef     *string             `json:"payment_ref,omitempty"`
}

type TicketService interface {
	IssueTicket(ctx context.Context, input IssueTicketInput) (*models.Ticket, error)
	// GetTicket returns ErrForbiddenOperation when ownerID is set and does not own the ticket.
	GetTicket(ctx context.Context, id int, ownerID *int) (*models.Ticket, error)
	ListTickets(ctx context.Context, filter repositories.ListTicketsFilter) ([]models.Ticket, error)
	ExportCSV(ctx context.Context, tournamentID int, w io.Writer) error
	ExportXLSX(ctx context.Context, tournamentID int, w io.Writer) error
	ArchiveExport(ctx context.Context, tournamentID int) (*storage.UploadResult, error)
}

type ticketService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	ticketRepo     repositories.TicketRepository
	playerRepo     repositories.AccountRepository
	notifier       Notifier
	uploader       storage.FileUploader
	metrics        *metrics.Metrics
	logger         *slog.Logger
	now            func() time.Time
}

func NewTicketService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	ticketRepo repositories.TicketRepository,
	playerRepo repositories.AccountRepository,
	notifier Notifier,
	uploader storage.FileUploader,
	m *metrics.Metrics,
	logger *slog.Logger,
) TicketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ticketService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		ticketRepo:     ticketRepo,
		playerRepo:     playerRepo,
		notifier:       notifier,
		uploader:       uploader,
		metrics:        m,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *ticketService) IssueTicket(ctx context.Context, input IssueTicketInput) (*models.Ticket, error) {
	if input.TournamentID == nil || *input.TournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	if input.PlayerID != nil && *input.PlayerID <= 0 {
		return nil, fmt.Errorf("%w: player_id must be positive", ErrValidationFailed)
	}
	status := input.Status
	if status == "" {
		status = models.TicketStatusPaid
	}
	if status != models.TicketStatusPaid && status != models.TicketStatusFree {
		return nil, fmt.Errorf("%w: invalid ticket status %q", ErrValidationFailed, status)
	}

	tournament, err := getTournament(ctx, s.tournamentRepo, *input.TournamentID)
	if err != nil {
		return nil, err
	}
	perTicket := tournament.TeamsPerTicket
	if input.TeamsPerTicket != nil {
		perTicket = *input.TeamsPerTicket
	}
	if perTicket <= 0 {
		return nil, fmt.Errorf("%w: teams_per_ticket must be positive", ErrValidationFailed)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournament.ID)
	if err != nil {
		return nil, persistenceError("list teams", err)
	}
	teamIDs, err := pickTeams(teams, perTicket)
	if err != nil {
		return nil, err
	}

	accessCode, err := generateRandomToken(accessCodeLength)
	if err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		PlayerID:     input.PlayerID,
		TournamentID: tournament.ID,
		AccessCode:   accessCode,
		TeamIDs:      teamIDs,
		Status:       status,
		PaymentRef:   input.PaymentRef,
	}

	for attempt := 1; ; attempt++ {
		ticket.TicketNumber = newTicketNumber()
		err = s.ticketRepo.Create(ctx, nil, ticket)
		if err == nil {
			break
		}
		if errors.Is(err, repositories.ErrTicketNumberConflict) && attempt < ticketNumberTries {
			continue
		}
		switch {
		case errors.Is(err, repositories.ErrTicketPaymentConflict):
			return nil, ErrTicketAlreadyIssued
		case errors.Is(err, repositories.ErrTicketPlayerInvalid):
			return nil, fmt.Errorf("%w: player does not exist", ErrValidationFailed)
		case errors.Is(err, repositories.ErrTicketTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, persistenceError("create ticket", err)
	}

	s.metrics.TicketIssued(string(ticket.Status))
	s.logger.InfoContext(ctx, "ticket issued",
		slog.Int("ticket_id", ticket.ID),
		slog.Int("tournament_id", ticket.TournamentID),
		slog.String("status", string(ticket.Status)),
	)

	byID := make(map[int]models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	for _, id := range ticket.TeamIDs {
		ticket.Teams = append(ticket.Teams, byID[id])
	}

	s.sendTicketEmail(ctx, tournament, ticket)
	return ticket, nil
}

func newTicketNumber() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:ticketNumberLength])
}

func (s *ticketService) sendTicketEmail(ctx context.Context, tournament *models.Tournament, ticket *models.Ticket) {
	if s.notifier == nil || s.playerRepo == nil || ticket.PlayerID == nil {
		return
	}
	player, err := s.playerRepo.GetByID(ctx, *ticket.PlayerID)
	if err != nil {
		s.logger.WarnContext(ctx, "ticket email skipped: player lookup failed", slog.Int("ticket_id", ticket.ID), slog.Any("error", err))
		return
	}
	names := make([]string, 0, len(ticket.Teams))
	for _, t := range ticket.Teams {
		names = append(names, t.DisplayName())
	}
	body, err := RenderTicketEmail(TicketEmailData{
		PlayerName:     player.Name,
		TournamentName: tournament.Name,
		TicketNumber:   ticket.TicketNumber,
		AccessCode:     ticket.AccessCode,
		Teams:          names,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "ticket email skipped: template failed", slog.Any("error", err))
		return
	}
	if err := s.notifier.Notify(ctx, player.Email, "Your ticket for "+tournament.Name, body); err != nil {
		s.logger.WarnContext(ctx, "ticket email failed", slog.Int("ticket_id", ticket.ID), slog.Any("error", err))
	}
}

func (s *ticketService) GetTicket(ctx context.Context, id int, ownerID *int) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTicketNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, persistenceError("get ticket", err)
	}
	if ownerID != nil && (ticket.PlayerID == nil || *ticket.PlayerID != *ownerID) {
		return nil, ErrForbiddenOperation
	}

	tickets := []models.Ticket{*ticket}
	attachTeams(ctx, s.teamRepo, tickets, s.logger)
	return &tickets[0], nil
}

func (s *ticketService) ListTickets(ctx context.Context, filter repositories.ListTicketsFilter) ([]models.Ticket, error) {
	if filter.TournamentID == nil || *filter.TournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	if filter.Limit <= 0 || filter.Limit > repositories.MaxTicketListLimit {
		filter.Limit = repositories.MaxTicketListLimit
	}
	tickets, err := s.ticketRepo.List(ctx, filter)
	if err != nil {
		return nil, persistenceError("list tickets", err)
	}
	attachTeams(ctx, s.teamRepo, tickets, s.logger)
	return tickets, nil
}

// exportRows загружает билеты турнира и превращает их в строки для CSV/XLSX.
func (s *ticketService) exportRows(ctx context.Context, tournamentID int) ([][]string, error) {
	if tournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	tickets, err := s.ticketRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, persistenceError("list tickets for export", err)
	}
	attachTeams(ctx, s.teamRepo, tickets, s.logger)

	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		names := make([]string, 0, len(t.Teams))
		for _, team := range t.Teams {
			names = append(names, team.DisplayName())
		}
		playerID := ""
		if t.PlayerID != nil {
			playerID = strconv.Itoa(*t.PlayerID)
		}
		rows = append(rows, []string{
			t.TicketNumber,
			t.AccessCode,
			playerID,
			string(t.Status),
			strconv.FormatFloat(t.TotalPoints, 'f', -1, 64),
			strconv.FormatBool(t.IsWinner),
			strings.Join(names, "|"),
		})
	}
	return rows, nil
}

func (s *ticketService) ExportCSV(ctx context.Context, tournamentID int, w io.Writer) error {
	rows, err := s.exportRows(ctx, tournamentID)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

func (s *ticketService) ExportXLSX(ctx context.Context, tournamentID int, w io.Writer) error {
	rows, err := s.exportRows(ctx, tournamentID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Tickets"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		// total_points храним числом, чтобы по нему можно было сортировать в Excel
		if total, err := strconv.ParseFloat(row[4], 64); err == nil {
			values[4] = total
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write xlsx row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func (s *ticketService) ArchiveExport(ctx context.Context, tournamentID int) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrStorageNotConfigured
	}
	tournament, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.ExportCSV(ctx, tournamentID, &buf); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/%s/tickets-%s-%s.csv",
		slug.Make(tournament.Name), s.now().UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
	result, err := s.uploader.Upload(ctx, key, "text/csv", &buf)
	if err != nil {
		return nil, fmt.Errorf("archive export: %w", err)
	}

	s.logger.InfoContext(ctx, "ticket export archived", slog.Int("tournament_id", tournamentID), slog.String("key", result.Key))
	return result, nil
}

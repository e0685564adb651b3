package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/Dosada05/ticket-tournament/models"
	"github.com/Dosada05/ticket-tournament/repositories"
)

var ErrTournamentInvalidStatusTransition = fmt.Errorf("%w: invalid tournament status transition", ErrValidationFailed)

type CreateTournamentInput struct {
	Name             string                   `json:"name"`
	Status           *models.TournamentStatus `json:"status,omitempty"`
	Rounds           *int                     `json:"rounds,omitempty"`
	TeamsPerTicket   *int                     `json:"teams_per_ticket,omitempty"`
	AnnouncementDate *time.Time               `json:"announcement_date,omitempty"`
}

type UpdateTournamentInput struct {
	Name             *string                  `json:"name,omitempty"`
	Status           *models.TournamentStatus `json:"status,omitempty"`
	Rounds           *int                     `json:"rounds,omitempty"`
	TeamsPerTicket   *int                     `json:"teams_per_ticket,omitempty"`
	AnnouncementDate *time.Time               `json:"announcement_date,omitempty"`
}

type CreateTeamInput struct {
	SeedNumber string  `json:"seed_number"`
	TeamName   *string `json:"team_name,omitempty"`
}

type UpdateTeamInput struct {
	SeedNumber *string `json:"seed_number,omitempty"`
	TeamName   *string `json:"team_name,omitempty"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput, createdBy int) (*models.Tournament, error)
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error

	CreateTeams(ctx context.Context, tournamentID int, inputs []CreateTeamInput) ([]*models.Team, error)
	UpdateTeam(ctx context.Context, teamID int, input UpdateTeamInput) (*models.Team, error)
	ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error)

	// AutoCompleteTournaments переводит активные турниры с прошедшей датой объявления в completed.
	AutoCompleteTournaments(ctx context.Context, now time.Time) (int, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		logger:         logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput, createdBy int) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	}

	t := &models.Tournament{
		Name:             name,
		Slug:             slug.Make(name),
		Status:           models.StatusUpcoming,
		Rounds:           models.DefaultRounds,
		TeamsPerTicket:   models.DefaultTeamsPerTicket,
		AnnouncementDate: input.AnnouncementDate,
	}
	if createdBy > 0 {
		t.CreatedBy = &createdBy
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.Rounds != nil {
		t.Rounds = *input.Rounds
	}
	if input.TeamsPerTicket != nil {
		t.TeamsPerTicket = *input.TeamsPerTicket
	}
	if err := validateTournament(t); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, mapTournamentRepoError(err, "create tournament")
	}

	s.logger.InfoContext(ctx, "tournament created", slog.Int("tournament_id", t.ID), slog.String("slug", t.Slug))
	return t, nil
}

func validateTournament(t *models.Tournament) error {
	if t.Slug == "" {
		return fmt.Errorf("%w: tournament name must contain letters or digits", ErrValidationFailed)
	}
	if !models.IsValidTournamentStatus(t.Status) {
		return fmt.Errorf("%w: invalid tournament status %q", ErrValidationFailed, t.Status)
	}
	if t.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be at least 1", ErrValidationFailed)
	}
	if t.TeamsPerTicket < 1 {
		return fmt.Errorf("%w: teams_per_ticket must be at least 1", ErrValidationFailed)
	}
	return nil
}

func mapTournamentRepoError(err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentSlugConflict):
		return ErrTournamentSlugConflict
	case errors.Is(err, repositories.ErrTournamentInUse):
		return ErrTournamentInUse
	case errors.Is(err, repositories.ErrTournamentInvalidAdmin):
		return fmt.Errorf("%w: creator does not exist", ErrValidationFailed)
	default:
		return persistenceError(op, err)
	}
}

func (s *tournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := getTournament(ctx, s.tournamentRepo, id)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByTournament(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load tournament teams", slog.Int("tournament_id", id), slog.Any("error", err))
	} else {
		t.Teams = teams
	}
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	if filter.Status != nil && !models.IsValidTournamentStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: invalid tournament status %q", ErrValidationFailed, *filter.Status)
	}
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, persistenceError("list tournaments", err)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	t, err := getTournament(ctx, s.tournamentRepo, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: tournament name cannot be empty", ErrValidationFailed)
		}
		t.Name = name
		t.Slug = slug.Make(name)
	}
	if input.Status != nil {
		if !models.IsValidTournamentStatus(*input.Status) {
			return nil, fmt.Errorf("%w: invalid tournament status %q", ErrValidationFailed, *input.Status)
		}
		if !isValidStatusTransition(t.Status, *input.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, t.Status, *input.Status)
		}
		t.Status = *input.Status
	}
	if input.Rounds != nil {
		t.Rounds = *input.Rounds
	}
	if input.TeamsPerTicket != nil {
		t.TeamsPerTicket = *input.TeamsPerTicket
	}
	if input.AnnouncementDate != nil {
		t.AnnouncementDate = input.AnnouncementDate
	}
	if err := validateTournament(t); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, mapTournamentRepoError(err, "update tournament")
	}
	return t, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return mapTournamentRepoError(err, "delete tournament")
	}
	s.logger.InfoContext(ctx, "tournament deleted", slog.Int("tournament_id", id))
	return nil
}

func (s *tournamentService) CreateTeams(ctx context.Context, tournamentID int, inputs []CreateTeamInput) ([]*models.Team, error) {
	if tournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one team is required", ErrValidationFailed)
	}
	if _, err := getTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}

	teams := make([]*models.Team, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		seed := strings.TrimSpace(in.SeedNumber)
		if seed == "" {
			return nil, fmt.Errorf("%w: seed_number is required for every team", ErrValidationFailed)
		}
		if _, dup := seen[seed]; dup {
			return nil, fmt.Errorf("%w: seed %s", ErrTeamSeedConflict, seed)
		}
		seen[seed] = struct{}{}
		teams = append(teams, &models.Team{
			TournamentID: tournamentID,
			SeedNumber:   seed,
			TeamName:     in.TeamName,
			Status:       models.StatusForName(in.TeamName),
		})
	}

	if err := s.teamRepo.CreateBatch(ctx, nil, teams); err != nil {
		return nil, mapTeamRepoError(err, "create teams")
	}
	s.logger.InfoContext(ctx, "teams created", slog.Int("tournament_id", tournamentID), slog.Int("count", len(teams)))
	return teams, nil
}

func mapTeamRepoError(err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamSeedConflict):
		return ErrTeamSeedConflict
	case errors.Is(err, repositories.ErrTeamTournamentInvalid):
		return ErrTournamentNotFound
	default:
		return persistenceError(op, err)
	}
}

func (s *tournamentService) UpdateTeam(ctx context.Context, teamID int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, mapTeamRepoError(err, "get team")
	}

	if input.SeedNumber != nil {
		seed := strings.TrimSpace(*input.SeedNumber)
		if seed == "" {
			return nil, fmt.Errorf("%w: seed_number cannot be empty", ErrValidationFailed)
		}
		team.SeedNumber = seed
	}
	if input.TeamName != nil {
		team.TeamName = input.TeamName
	}
	team.Status = models.StatusForName(team.TeamName)

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, mapTeamRepoError(err, "update team")
	}
	return team, nil
}

func (s *tournamentService) ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error) {
	if tournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament_id is required", ErrValidationFailed)
	}
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, persistenceError("list teams", err)
	}
	return teams, nil
}

func (s *tournamentService) AutoCompleteTournaments(ctx context.Context, now time.Time) (int, error) {
	due, err := s.tournamentRepo.GetTournamentsDueForCompletion(ctx, nil, now)
	if err != nil {
		return 0, persistenceError("find tournaments due for completion", err)
	}

	completed := 0
	for _, t := range due {
		if err := s.tournamentRepo.UpdateStatus(ctx, nil, t.ID, models.StatusCompleted); err != nil {
			s.logger.ErrorContext(ctx, "failed to auto-complete tournament", slog.Int("tournament_id", t.ID), slog.Any("error", err))
			continue
		}
		completed++
		s.logger.InfoContext(ctx, "tournament auto-completed", slog.Int("tournament_id", t.ID), slog.String("name", t.Name))
	}
	return completed, nil
}

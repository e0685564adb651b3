package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/Dosada05/ticket-tournament/models"
	"github.com/Dosada05/ticket-tournament/repositories"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// persistenceError оборачивает ошибку хранилища, сохраняя исходную причину для errors.Is.
func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// getTournament загружает турнир и переводит ошибку репозитория в ошибку сервиса.
func getTournament(ctx context.Context, repo repositories.TournamentRepository, id int) (*models.Tournament, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, persistenceError("get tournament", err)
	}
	return t, nil
}

// attachTeams заполняет Teams у билетов одним запросом к репозиторию команд.
func attachTeams(ctx context.Context, teamRepo repositories.TeamRepository, tickets []models.Ticket, logger *slog.Logger) {
	if teamRepo == nil || len(tickets) == 0 {
		return
	}
	seen := make(map[int]struct{})
	ids := make([]int, 0)
	for _, t := range tickets {
		for _, id := range t.TeamIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	teams, err := teamRepo.GetByIDs(ctx, ids)
	if err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "failed to resolve ticket teams", slog.Any("error", err))
		}
		return
	}
	byID := make(map[int]models.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}
	for i := range tickets {
		resolved := make([]models.Team, 0, len(tickets[i].TeamIDs))
		for _, id := range tickets[i].TeamIDs {
			if team, ok := byID[id]; ok {
				resolved = append(resolved, team)
			}
		}
		tickets[i].Teams = resolved
	}
}

const tokenCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateRandomToken(length int) (string, error) {
	b := make([]byte, length)
	max := big.NewInt(int64(len(tokenCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random token: %w", err)
		}
		b[i] = tokenCharset[n.Int64()]
	}
	return string(b), nil
}

// pickTeams выбирает n различных команд случайным образом.
func pickTeams(teams []models.Team, n int) ([]int, error) {
	if n <= 0 || n > len(teams) {
		return nil, ErrNotEnoughTeams
	}
	pool := make([]int, len(teams))
	for i, t := range teams {
		pool[i] = t.ID
	}
	// частичный Fisher-Yates
	for i := 0; i < n; i++ {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool)-i)))
		if err != nil {
			return nil, fmt.Errorf("failed to pick teams: %w", err)
		}
		k := i + int(j.Int64())
		pool[i], pool[k] = pool[k], pool[i]
	}
	return pool[:n], nil
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusUpcoming:  {models.StatusActive, models.StatusCompleted},
		models.StatusActive:    {models.StatusCompleted},
		models.StatusCompleted: {},
	}
	for _, allowedNextStatus := range allowedTransitions[current] {
		if next == allowedNextStatus {
			return true
		}
	}
	return false
}

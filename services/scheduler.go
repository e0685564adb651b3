package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// TournamentCompleter is the slice of TournamentService the scheduler drives.
type TournamentCompleter interface {
	AutoCompleteTournaments(ctx context.Context, now time.Time) (int, error)
}

// StartAutoCompleteScheduler запускает периодический перевод турниров в completed.
// Первый прогон выполняется сразу. Остановка через Shutdown у возвращённого планировщика.
func StartAutoCompleteScheduler(ctx context.Context, completer TournamentCompleter, interval time.Duration, logger *slog.Logger) (gocron.Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: scheduler interval must be positive", ErrValidationFailed)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			completed, err := completer.AutoCompleteTournaments(ctx, time.Now().UTC())
			if err != nil {
				logger.ErrorContext(ctx, "scheduler: auto-complete run failed", slog.Any("error", err))
				return
			}
			if completed > 0 {
				logger.InfoContext(ctx, "scheduler: tournaments completed", slog.Int("count", completed))
			}
		}),
		gocron.WithName("tournament-auto-complete"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		// медленный прогон не должен накладываться на следующий
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("register auto-complete job: %w", err)
	}

	sched.Start()
	logger.Info("tournament auto-complete scheduler started", slog.Duration("interval", interval))
	return sched, nil
}

package worker

import (
	"context"
	"fmt"
	"time"

	"sprintboard/internal/lifecycle"
	"sprintboard/internal/logger"
	"sprintboard/internal/models"
	"sprintboard/internal/models/sprint"

	"go.uber.org/zap"
)

type SprintRepository interface {
	ListDueSprints(ctx context.Context, today models.Date, limit int) ([]*sprint.Sprint, error)
	UpdateSprint(ctx context.Context, s *sprint.Sprint) error
}

// StatusWorker moves sprints along planned -> active -> completed as their dates pass.
type StatusWorker struct {
	repo      SprintRepository
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

func NewStatusWorker(repo SprintRepository, interval *time.Duration, batchSize *int) *StatusWorker {
	intervalToSet := 5 * time.Minute
	if interval != nil && *interval > 0 {
		intervalToSet = *interval
	}

	batchToSet := 100
	if batchSize != nil && *batchSize > 0 {
		batchToSet = *batchSize
	}
	return &StatusWorker{
		repo:      repo,
		interval:  intervalToSet,
		batchSize: batchToSet,
		now:       time.Now,
	}
}

// Start runs a check immediately and then on every tick until ctx is done.
func (w *StatusWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Check(ctx)
	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновая проверка статусов спринтов", zap.Time("started_at", w.now()))
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

// Check advances every sprint whose dates call for it and returns how many changed.
// Only due sprints are fetched, so a batch never fills up with sprints that stay put.
func (w *StatusWorker) Check(ctx context.Context) int {
	start := time.Now()
	today := models.Today(w.now)

	sprints, err := w.repo.ListDueSprints(ctx, today, w.batchSize)
	if err != nil {
		logger.Warn("Worker: ошибка получения спринтов", zap.Error(err))
		return 0
	}

	advanced := 0
	for _, sp := range sprints {
		next, changed := lifecycle.NextStatus(*sp, today)
		if !changed {
			continue
		}
		if err := w.advance(ctx, sp, next); err != nil {
			logger.Warn("Worker: Ошибка обновления спринта", zap.Int64("sprint_id", sp.ID), zap.Error(err))
			continue
		}
		advanced++
	}

	logger.Info(
		"Worker: Завершение проверки спринтов",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", len(sprints)),
		zap.Int("advanced", advanced),
	)
	return advanced
}

func (w *StatusWorker) advance(ctx context.Context, sp *sprint.Sprint, next sprint.Status) error {
	previous := sp.Status
	sp.Status = next
	if err := w.repo.UpdateSprint(ctx, sp); err != nil {
		return fmt.Errorf("обновление статуса: %w", err)
	}
	logger.Info("Worker: Статус спринта изменён",
		zap.Int64("sprint_id", sp.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(next)))
	return nil
}

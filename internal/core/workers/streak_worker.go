package workers

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/habitly/internal/core/analysis"
	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/infra/logger"
	"github.com/comitanigiacomo/habitly/internal/infra/metrics"
)

const queueSize = 100

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type EventRepository interface {
	ListByHabitID(ctx context.Context, habitID string) ([]*domain.HabitEvent, error)
}

type StreakJob struct {
	HabitID string
}

// StreakWorker keeps the cached streak columns of habits up to date. Jobs are
// processed one at a time by a single goroutine.
type StreakWorker struct {
	habitRepo HabitRepository
	eventRepo EventRepository
	jobs      chan StreakJob
	now       func() time.Time
	log       *logrus.Entry

	wg sync.WaitGroup
}

func NewStreakWorker(hRepo HabitRepository, eRepo EventRepository) *StreakWorker {
	return &StreakWorker{
		habitRepo: hRepo,
		eventRepo: eRepo,
		jobs:      make(chan StreakJob, queueSize),
		now:       time.Now,
		log:       logger.Log.WithField("component", "streak_worker"),
	}
}

func (w *StreakWorker) WithClock(now func() time.Time) *StreakWorker {
	w.now = now
	return w
}

func (w *StreakWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.log.Info("Streak worker started")
		for {
			select {
			case job := <-w.jobs:
				metrics.StreakQueueDepth.Set(float64(len(w.jobs)))
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.log.Info("Streak worker shutting down")
				return
			}
		}
	}()
}

// Wait blocks until the worker goroutine has returned.
func (w *StreakWorker) Wait() {
	w.wg.Wait()
}

// Enqueue never blocks; on a full queue the job is dropped. The nightly
// refresh picks the habit up again.
func (w *StreakWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- StreakJob{HabitID: habitID}:
		metrics.StreakQueueDepth.Set(float64(len(w.jobs)))
	default:
		metrics.StreakJobsDropped.Inc()
		w.log.WithField("habit_id", habitID).Warn("Streak queue full, dropping job")
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	log := w.log.WithField("habit_id", job.HabitID)

	current, longest, changed, err := w.Recompute(ctx, job.HabitID)
	switch {
	case err != nil:
		metrics.StreakJobs.WithLabelValues("failed").Inc()
		log.WithError(err).Error("Streak recomputation failed")
	case changed:
		metrics.StreakJobs.WithLabelValues("updated").Inc()
		log.WithFields(logrus.Fields{"current": current, "longest": longest}).Debug("Streak updated")
	default:
		metrics.StreakJobs.WithLabelValues("unchanged").Inc()
	}
}

// Recompute derives the streaks of one habit from its full history and
// stores them when they differ from the cached values.
func (w *StreakWorker) Recompute(ctx context.Context, habitID string) (current, longest int, changed bool, err error) {
	habit, err := w.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return 0, 0, false, err
	}

	events, err := w.eventRepo.ListByHabitID(ctx, habitID)
	if err != nil {
		return 0, 0, false, err
	}

	dates := analysis.Dates(events)
	current = analysis.CurrentStreak(dates, habit.Periodicity, w.now())
	longest = analysis.LongestStreak(dates, habit.Periodicity)

	if habit.CurrentStreak == current && habit.LongestStreak == longest {
		return current, longest, false, nil
	}

	if err := w.habitRepo.UpdateStreaks(ctx, habitID, current, longest); err != nil {
		return current, longest, false, err
	}

	return current, longest, true, nil
}

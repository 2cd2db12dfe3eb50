package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/habitly/internal/infra/logger"
	"github.com/comitanigiacomo/habitly/internal/infra/metrics"
)

type HabitLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type Enqueuer interface {
	Enqueue(habitID string)
}

// StreakScheduler re-enqueues every habit on a cron schedule. Current
// streaks decay with the calendar even when no events arrive.
type StreakScheduler struct {
	cronEngine *cron.Cron
	habits     HabitLister
	worker     Enqueuer
	spec       string
	log        *logrus.Entry
}

func NewStreakScheduler(habits HabitLister, worker Enqueuer, spec string) *StreakScheduler {
	return &StreakScheduler{
		cronEngine: cron.New(cron.WithLocation(time.UTC)),
		habits:     habits,
		worker:     worker,
		spec:       spec,
		log:        logger.Log.WithField("component", "streak_scheduler"),
	}
}

func (s *StreakScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := s.RefreshAll(ctx); err != nil {
			s.log.WithError(err).Error("Scheduled streak refresh failed")
		}
	}); err != nil {
		return fmt.Errorf("scheduler: invalid cron spec %q: %w", s.spec, err)
	}

	s.cronEngine.Start()
	s.log.WithField("spec", s.spec).Info("Streak scheduler started")
	return nil
}

// RefreshAll enqueues a recomputation for every habit and reports how many
// were enqueued.
func (s *StreakScheduler) RefreshAll(ctx context.Context) (int, error) {
	ids, err := s.habits.ListIDs(ctx)
	if err != nil {
		metrics.StreakRefreshRuns.WithLabelValues("failed").Inc()
		return 0, fmt.Errorf("scheduler: failed to list habits: %w", err)
	}

	for _, id := range ids {
		s.worker.Enqueue(id)
	}

	metrics.StreakRefreshRuns.WithLabelValues("ok").Inc()
	s.log.WithField("habits", len(ids)).Info("Streak refresh enqueued")
	return len(ids), nil
}

// Stop waits for a running refresh to finish.
func (s *StreakScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.log.Info("Streak scheduler stopped")
}

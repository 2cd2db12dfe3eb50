package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

// StreakEnqueuer schedules a streak recomputation for a habit.
type StreakEnqueuer interface {
	Enqueue(habitID string)
}

type EventService struct {
	repo      domain.EventRepository
	habitRepo domain.HabitRepository
	worker    StreakEnqueuer
	now       func() time.Time
}

// NewEventService wires the event store. worker may be nil when cached
// streaks are not maintained (the CLI computes them on demand).
func NewEventService(repo domain.EventRepository, habitRepo domain.HabitRepository, worker StreakEnqueuer) *EventService {
	return &EventService{
		repo:      repo,
		habitRepo: habitRepo,
		worker:    worker,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to default the event date.
func (s *EventService) WithClock(now func() time.Time) *EventService {
	s.now = now
	return s
}

type RecordEventInput struct {
	HabitID    string
	UserID     string
	Date       time.Time
	MoodBefore string
	MoodAfter  string
}

func (s *EventService) enqueue(habitID string) {
	if s.worker != nil {
		s.worker.Enqueue(habitID)
	}
}

func (s *EventService) authorize(ctx context.Context, habitID, userID string) (*domain.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return habit, nil
}

// Record logs a completion. A zero Date means today.
func (s *EventService) Record(ctx context.Context, input RecordEventInput) (*domain.HabitEvent, error) {
	before, err := domain.ParseMood(input.MoodBefore)
	if err != nil {
		return nil, err
	}
	after, err := domain.ParseMood(input.MoodAfter)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	event := domain.NewHabitEvent(input.HabitID, input.UserID, date, before, after)
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.authorize(ctx, event.HabitID, event.UserID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.enqueue(event.HabitID)

	return event, nil
}

func (s *EventService) GetByID(ctx context.Context, id string, userID string) (*domain.HabitEvent, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return event, nil
}

func (s *EventService) ListByHabitID(ctx context.Context, habitID string, userID string) ([]*domain.HabitEvent, error) {
	if _, err := s.authorize(ctx, habitID, userID); err != nil {
		return nil, err
	}

	return s.repo.ListByHabitID(ctx, habitID)
}

func (s *EventService) Delete(ctx context.Context, id string, userID string) error {
	event, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.enqueue(event.HabitID)

	return nil
}

// DeleteByDate removes every completion of the habit on that day.
func (s *EventService) DeleteByDate(ctx context.Context, habitID string, userID string, date time.Time) (int64, error) {
	if _, err := s.authorize(ctx, habitID, userID); err != nil {
		return 0, err
	}

	n, err := s.repo.DeleteByDate(ctx, habitID, domain.TruncateDay(date))
	if err != nil {
		return 0, err
	}

	if n > 0 {
		s.enqueue(habitID)
	}

	return n, nil
}

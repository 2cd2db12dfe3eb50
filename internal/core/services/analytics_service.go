package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/habitly/internal/core/analysis"
	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

type AnalyticsService struct {
	habitRepo domain.HabitRepository
	eventRepo domain.EventRepository
	userRepo  domain.UserRepository
	now       func() time.Time
}

func NewAnalyticsService(habitRepo domain.HabitRepository, eventRepo domain.EventRepository, userRepo domain.UserRepository) *AnalyticsService {
	return &AnalyticsService{
		habitRepo: habitRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// HabitAnalytics computes the report of one habit from its full history.
// Streaks are always recomputed here; the cached columns on the habit only
// serve listings.
func (s *AnalyticsService) HabitAnalytics(ctx context.Context, input domain.AnalyticsInput) (*domain.HabitAnalytics, error) {
	habit, err := s.habitRepo.GetByID(ctx, input.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != input.UserID {
		return nil, domain.ErrHabitNotFound
	}

	events, err := s.eventRepo.ListByHabitID(ctx, habit.ID)
	if err != nil {
		return nil, err
	}

	today := input.Today
	if today.IsZero() {
		today = s.now()
	}
	today = domain.TruncateDay(today)

	dates := analysis.Dates(events)

	report := &domain.HabitAnalytics{
		HabitID:          habit.ID,
		Name:             habit.Name,
		Description:      habit.Description,
		Periodicity:      habit.Periodicity,
		Unit:             habit.Periodicity.Unit(),
		CreatedOn:        domain.FormatDate(habit.CreatedAt),
		TotalCompletions: len(events),
		CurrentStreak:    analysis.CurrentStreak(dates, habit.Periodicity, today),
		LongestStreak:    analysis.LongestStreak(dates, habit.Periodicity),
		MoodImprovements: analysis.CountPairedImprovements(analysis.Observations(events)),
	}

	if last, ok := latest(dates); ok {
		report.LastCompletion = domain.FormatDate(last)
	}

	return report, nil
}

// Summary lists the habits of a user together with their periodicity.
func (s *AnalyticsService) Summary(ctx context.Context, userID string) (*domain.UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &domain.UserSummary{
		UserID:     user.ID,
		UserName:   user.Name,
		TotalCount: len(habits),
		Habits:     make([]domain.HabitSummary, 0, len(habits)),
	}

	for _, h := range habits {
		summary.Habits = append(summary.Habits, domain.HabitSummary{
			HabitID:     h.ID,
			Name:        h.Name,
			Periodicity: h.Periodicity,
		})
	}

	return summary, nil
}

func latest(dates []time.Time) (time.Time, bool) {
	var last time.Time
	for _, d := range dates {
		if d.After(last) {
			last = d
		}
	}
	return last, !last.IsZero()
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitly/internal/adapters/repository"
	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/core/services"
)

type analyticsFixture struct {
	habits *repository.InMemoryHabitRepository
	events *repository.InMemoryEventRepository
	users  *repository.InMemoryUserRepository
	svc    *services.AnalyticsService
	user   *domain.User
}

func newAnalyticsFixture(t *testing.T, today time.Time) *analyticsFixture {
	t.Helper()

	events := repository.NewInMemoryEventRepository()
	habits := repository.NewInMemoryHabitRepository(events)
	users := repository.NewInMemoryUserRepository()

	user, err := domain.NewUser("u-1", "Kirsi")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))

	svc := services.NewAnalyticsService(habits, events, users).WithClock(func() time.Time { return today })
	return &analyticsFixture{habits: habits, events: events, users: users, svc: svc, user: user}
}

func (f *analyticsFixture) addHabit(t *testing.T, name string, period domain.Periodicity) *domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(f.user.ID, name, name+" every "+string(period), period)
	require.NoError(t, err)
	require.NoError(t, f.habits.Create(context.Background(), h))
	return h
}

func (f *analyticsFixture) log(t *testing.T, h *domain.Habit, date time.Time, before, after domain.Mood) {
	t.Helper()
	require.NoError(t, f.events.Create(context.Background(), domain.NewHabitEvent(h.ID, h.UserID, date, before, after)))
}

func TestAnalyticsService_HabitAnalytics(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)
	daysAgo := func(n int) time.Time { return domain.TruncateDay(today).AddDate(0, 0, -n) }

	t.Run("Journaling: weekly streak and paired mood improvements", func(t *testing.T) {
		f := newAnalyticsFixture(t, today)
		h := f.addHabit(t, "Journaling", domain.Weekly)

		old1, _ := domain.ParseDate("2025-03-18")
		old2, _ := domain.ParseDate("2025-03-22")
		f.log(t, h, old1, domain.MoodNegative, domain.MoodNeutral)
		f.log(t, h, old2, domain.MoodNeutral, domain.MoodPositive)
		f.log(t, h, daysAgo(14), domain.MoodNegative, domain.MoodPositive)
		f.log(t, h, daysAgo(7), domain.MoodNeutral, domain.MoodPositive)
		f.log(t, h, today, domain.MoodPositive, domain.MoodPositive)

		report, err := f.svc.HabitAnalytics(ctx, domain.AnalyticsInput{UserID: f.user.ID, HabitID: h.ID})
		require.NoError(t, err)

		assert.Equal(t, 5, report.TotalCompletions)
		assert.Equal(t, 3, report.CurrentStreak)
		assert.Equal(t, 3, report.LongestStreak)
		assert.Equal(t, 4, report.MoodImprovements)
		assert.Equal(t, "week(s)", report.Unit)
		assert.Equal(t, "2026-10-19", report.LastCompletion)
		assert.Equal(t, domain.FormatDate(h.CreatedAt), report.CreatedOn)
	})

	t.Run("Daily streak honours the requested day", func(t *testing.T) {
		f := newAnalyticsFixture(t, today)
		h := f.addHabit(t, "Reading", domain.Daily)

		for i := 0; i < 5; i++ {
			f.log(t, h, daysAgo(i), domain.MoodNone, domain.MoodNone)
		}
		f.log(t, h, daysAgo(0), domain.MoodNone, domain.MoodNone)

		report, err := f.svc.HabitAnalytics(ctx, domain.AnalyticsInput{UserID: f.user.ID, HabitID: h.ID})
		require.NoError(t, err)
		assert.Equal(t, 6, report.TotalCompletions, "duplicates count as completions")
		assert.Equal(t, 5, report.CurrentStreak)
		assert.Equal(t, 5, report.LongestStreak)
		assert.Zero(t, report.MoodImprovements)

		report, err = f.svc.HabitAnalytics(ctx, domain.AnalyticsInput{UserID: f.user.ID, HabitID: h.ID, Today: today.AddDate(0, 0, 2)})
		require.NoError(t, err)
		assert.Zero(t, report.CurrentStreak)
		assert.Equal(t, 5, report.LongestStreak)
	})

	t.Run("Empty history", func(t *testing.T) {
		f := newAnalyticsFixture(t, today)
		h := f.addHabit(t, "Stretching", domain.Daily)

		report, err := f.svc.HabitAnalytics(ctx, domain.AnalyticsInput{UserID: f.user.ID, HabitID: h.ID})
		require.NoError(t, err)
		assert.Zero(t, report.TotalCompletions)
		assert.Zero(t, report.CurrentStreak)
		assert.Zero(t, report.LongestStreak)
		assert.Empty(t, report.LastCompletion)
	})

	t.Run("Other users cannot see the report", func(t *testing.T) {
		f := newAnalyticsFixture(t, today)
		h := f.addHabit(t, "Running", domain.Weekly)

		_, err := f.svc.HabitAnalytics(ctx, domain.AnalyticsInput{UserID: "u-2", HabitID: h.ID})
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})
}

func TestAnalyticsService_Summary(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture(t, time.Now())

	f.addHabit(t, "Meditation", domain.Daily)
	f.addHabit(t, "Running", domain.Weekly)

	summary, err := f.svc.Summary(ctx, f.user.ID)
	require.NoError(t, err)

	assert.Equal(t, "Kirsi", summary.UserName)
	assert.Equal(t, 2, summary.TotalCount)

	periods := map[string]domain.Periodicity{}
	for _, h := range summary.Habits {
		periods[h.Name] = h.Periodicity
	}
	assert.Equal(t, map[string]domain.Periodicity{"Meditation": domain.Daily, "Running": domain.Weekly}, periods)

	_, err = f.svc.Summary(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

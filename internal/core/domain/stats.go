package domain

import "time"

// HabitAnalytics is the report shown for a single habit.
type HabitAnalytics struct {
	HabitID          string      `json:"habit_id"`
	Name             string      `json:"name"`
	Description      string      `json:"description,omitempty"`
	Periodicity      Periodicity `json:"periodicity"`
	Unit             string      `json:"unit"`
	CreatedOn        string      `json:"created_on"`
	TotalCompletions int         `json:"total_completions"`
	CurrentStreak    int         `json:"current_streak"`
	LongestStreak    int         `json:"longest_streak"`
	MoodImprovements int         `json:"mood_improvements"`
	LastCompletion   string      `json:"last_completion,omitempty"`
}

type HabitSummary struct {
	HabitID     string      `json:"habit_id"`
	Name        string      `json:"name"`
	Periodicity Periodicity `json:"periodicity"`
}

// UserSummary lists the habits a user tracks.
type UserSummary struct {
	UserID     string         `json:"user_id"`
	UserName   string         `json:"user_name"`
	TotalCount int            `json:"total_habits"`
	Habits     []HabitSummary `json:"habits"`
}

type AnalyticsInput struct {
	UserID  string
	HabitID string
	Today   time.Time
}

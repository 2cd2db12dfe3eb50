package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidEvent = errors.New("invalid habit event data")
)

// HabitEvent is one completion of a habit, optionally annotated with the
// user's mood before and after doing it.
type HabitEvent struct {
	ID      string `json:"id"`
	HabitID string `json:"habit_id"`
	UserID  string `json:"user_id"`

	Date       time.Time `json:"-"`
	MoodBefore Mood      `json:"mood_before,omitempty"`
	MoodAfter  Mood      `json:"mood_after,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func NewHabitEvent(habitID, userID string, date time.Time, before, after Mood) *HabitEvent {
	return &HabitEvent{
		HabitID:    habitID,
		UserID:     userID,
		Date:       TruncateDay(date),
		MoodBefore: before,
		MoodAfter:  after,
		CreatedAt:  time.Now().UTC(),
	}
}

func (e *HabitEvent) Validate() error {
	if strings.TrimSpace(e.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(e.UserID) == "" {
		return errors.New("user_id is required")
	}
	if e.Date.IsZero() {
		return errors.New("date is required")
	}
	if !e.MoodBefore.IsZero() && !e.MoodBefore.Valid() {
		return ErrInvalidMood
	}
	if !e.MoodAfter.IsZero() && !e.MoodAfter.Valid() {
		return ErrInvalidMood
	}
	return nil
}

func (e HabitEvent) Observation() MoodObservation {
	return MoodObservation{Before: e.MoodBefore, After: e.MoodAfter}
}

func (e HabitEvent) MarshalJSON() ([]byte, error) {
	type alias HabitEvent
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{
		alias: alias(e),
		Date:  FormatDate(e.Date),
	})
}

func (e *HabitEvent) UnmarshalJSON(data []byte) error {
	type alias HabitEvent
	aux := struct {
		*alias
		Date string `json:"date"`
	}{
		alias: (*alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Date == "" {
		return nil
	}
	d, err := ParseDate(aux.Date)
	if err != nil {
		return err
	}
	e.Date = d
	return nil
}

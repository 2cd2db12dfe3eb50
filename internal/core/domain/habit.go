package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong   = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
)

const (
	MaxNameLen = 100
	MaxDescLen = 500
)

type Habit struct {
	ID            string      `json:"id" db:"id"`
	UserID        string      `json:"user_id" db:"user_id"`
	Name          string      `json:"name" db:"name"`
	Description   string      `json:"description,omitempty" db:"description"`
	Periodicity   Periodicity `json:"periodicity" db:"periodicity"`
	CurrentStreak int         `json:"current_streak" db:"current_streak"`
	LongestStreak int         `json:"longest_streak" db:"longest_streak"`
	Version       int         `json:"version" db:"version"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

func validateAndNormalize(name, desc string) (string, string, error) {
	cleanName := strings.TrimSpace(name)
	if cleanName == "" {
		return "", "", ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(cleanName) > MaxNameLen {
		return "", "", ErrHabitNameTooLong
	}

	cleanDesc := strings.TrimSpace(desc)
	if utf8.RuneCountInString(cleanDesc) > MaxDescLen {
		return "", "", ErrHabitDescTooLong
	}

	return cleanName, cleanDesc, nil
}

func NewHabit(userID, name, description string, period Periodicity) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	cleanName, cleanDesc, err := validateAndNormalize(name, description)
	if err != nil {
		return nil, err
	}

	if !period.Valid() {
		return nil, ErrInvalidPeriodicity
	}

	now := time.Now().UTC()

	return &Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        cleanName,
		Description: cleanDesc,
		Periodicity: period,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update renames the habit or changes its description. The periodicity is
// immutable since existing streaks depend on it.
func (h *Habit) Update(name, description string) error {
	cleanName, cleanDesc, err := validateAndNormalize(name, description)
	if err != nil {
		return err
	}

	h.Name = cleanName
	h.Description = cleanDesc
	h.UpdatedAt = time.Now().UTC()

	return nil
}

func (h *Habit) UpdateStreak(current, longest int) {
	h.CurrentStreak = current
	h.LongestStreak = longest
	h.UpdatedAt = time.Now().UTC()
}

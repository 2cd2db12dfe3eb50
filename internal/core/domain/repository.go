package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrHabitAlreadyExists = errors.New("a habit with this name already exists")
	ErrHabitConflict      = errors.New("habit version conflict")
	ErrEventNotFound      = errors.New("habit event not found")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	// Returns ErrHabitAlreadyExists when the user already owns a habit with the same name.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// GetByName retrieves the habit a user registered under the given name.
	GetByName(ctx context.Context, userID, name string) (*Habit, error)

	// ListByUserID retrieves all habits associated with a specific user.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// ListIDs returns the identifiers of every habit, used by the nightly streak refresh.
	ListIDs(ctx context.Context) ([]string, error)

	// Update modifies name and description of an existing habit.
	// Implementations must check the version to prevent lost updates.
	Update(ctx context.Context, habit *Habit) error

	// Delete permanently removes a habit together with all of its events.
	Delete(ctx context.Context, id string) error

	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type EventRepository interface {
	// Create persists a new completion event.
	Create(ctx context.Context, event *HabitEvent) error

	// GetByID retrieves a single event.
	GetByID(ctx context.Context, id string) (*HabitEvent, error)

	// ListByHabitID returns the full history of a habit in insertion order.
	ListByHabitID(ctx context.Context, habitID string) ([]*HabitEvent, error)

	// Delete removes one event. userID guards against deleting someone else's data.
	Delete(ctx context.Context, id string, userID string) error

	// DeleteByDate removes every event of a habit logged on the given day
	// and reports how many were removed.
	DeleteByDate(ctx context.Context, habitID string, date time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByName(ctx context.Context, name string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

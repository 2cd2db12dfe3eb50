package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

type HabitService struct {
	repo domain.HabitRepository
}

func NewHabitService(repo domain.HabitRepository) *HabitService {
	return &HabitService{
		repo: repo,
	}
}

type CreateHabitInput struct {
	UserID      string
	Name        string
	Description string
	Periodicity string
}

type UpdateHabitInput struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Version     int
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	period, err := domain.ParsePeriodicity(input.Periodicity)
	if err != nil {
		return nil, err
	}

	habit, err := domain.NewHabit(input.UserID, input.Name, input.Description, period)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, habit.UserID, habit.Name)
	switch {
	case err == nil && existing != nil:
		return nil, fmt.Errorf("%w: %q", domain.ErrHabitAlreadyExists, habit.Name)
	case err != nil && !errors.Is(err, domain.ErrHabitNotFound):
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// GetByID hides habits of other users behind ErrHabitNotFound.
func (s *HabitService) GetByID(ctx context.Context, id string, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *HabitService) GetByName(ctx context.Context, userID, name string) (*domain.Habit, error) {
	return s.repo.GetByName(ctx, userID, name)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && habit.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrHabitConflict, input.Version, habit.Version)
	}

	name := mergeString(input.Name, habit.Name)
	desc := mergeString(input.Description, habit.Description)

	if name != habit.Name {
		other, err := s.repo.GetByName(ctx, habit.UserID, name)
		if err == nil && other != nil && other.ID != habit.ID {
			return nil, fmt.Errorf("%w: %q", domain.ErrHabitAlreadyExists, name)
		}
		if err != nil && !errors.Is(err, domain.ErrHabitNotFound) {
			return nil, err
		}
	}

	if err := habit.Update(name, desc); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

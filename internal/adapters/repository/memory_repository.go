package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

var (
	_ domain.HabitRepository = (*InMemoryHabitRepository)(nil)
	_ domain.EventRepository = (*InMemoryEventRepository)(nil)
	_ domain.UserRepository  = (*InMemoryUserRepository)(nil)
)

// InMemoryHabitRepository keeps copies of the habits it is given, so callers
// never share state with the store.
type InMemoryHabitRepository struct {
	store  map[string]*domain.Habit
	events *InMemoryEventRepository

	mu sync.RWMutex
}

// NewInMemoryHabitRepository builds an empty store. When events is not nil,
// deleting a habit also drops its events there.
func NewInMemoryHabitRepository(events *InMemoryEventRepository) *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store:  make(map[string]*domain.Habit),
		events: events,
	}
}

func cloneHabit(h *domain.Habit) *domain.Habit {
	c := *h
	return &c
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; ok {
		return domain.ErrHabitAlreadyExists
	}
	for _, h := range r.store {
		if h.UserID == habit.UserID && h.Name == habit.Name {
			return domain.ErrHabitAlreadyExists
		}
	}

	if habit.Version == 0 {
		habit.Version = 1
	}
	r.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return cloneHabit(habit), nil
}

func (r *InMemoryHabitRepository) GetByName(ctx context.Context, userID, name string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, h := range r.store {
		if h.UserID == userID && h.Name == name {
			return cloneHabit(h), nil
		}
	}
	return nil, domain.ErrHabitNotFound
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*domain.Habit, 0)
	for _, h := range r.store {
		if h.UserID == userID {
			habits = append(habits, cloneHabit(h))
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].Name < habits[j].Name
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[habit.ID]
	if !ok {
		return domain.ErrHabitNotFound
	}
	if stored.Version != habit.Version {
		return fmt.Errorf("%w: stored v%d vs v%d", domain.ErrHabitConflict, stored.Version, habit.Version)
	}

	habit.Version++
	r.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	if r.events != nil {
		r.events.deleteByHabit(id)
	}
	return nil
}

func (r *InMemoryHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}
	h.UpdateStreak(current, longest)
	return nil
}

// InMemoryEventRepository keeps events in insertion order.
type InMemoryEventRepository struct {
	events []*domain.HabitEvent

	mu sync.RWMutex
}

func NewInMemoryEventRepository() *InMemoryEventRepository {
	return &InMemoryEventRepository{}
}

func cloneEvent(e *domain.HabitEvent) *domain.HabitEvent {
	c := *e
	return &c
}

func (r *InMemoryEventRepository) Create(ctx context.Context, event *domain.HabitEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	r.events = append(r.events, cloneEvent(event))
	return nil
}

func (r *InMemoryEventRepository) GetByID(ctx context.Context, id string) (*domain.HabitEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.events {
		if e.ID == id {
			return cloneEvent(e), nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (r *InMemoryEventRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.HabitEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.HabitEvent, 0)
	for _, e := range r.events {
		if e.HabitID == habitID {
			out = append(out, cloneEvent(e))
		}
	}
	return out, nil
}

func (r *InMemoryEventRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.events {
		if e.ID == id && e.UserID == userID {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return domain.ErrEventNotFound
}

func (r *InMemoryEventRepository) DeleteByDate(ctx context.Context, habitID string, date time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := domain.TruncateDay(date)
	kept := r.events[:0]
	var removed int64
	for _, e := range r.events {
		if e.HabitID == habitID && e.Date.Equal(day) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.events = kept
	return removed, nil
}

func (r *InMemoryEventRepository) deleteByHabit(habitID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	for _, e := range r.events {
		if e.HabitID != habitID {
			kept = append(kept, e)
		}
	}
	r.events = kept
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Name == user.Name {
			return domain.ErrUserAlreadyExists
		}
	}
	c := *user
	r.store[user.ID] = &c
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *InMemoryUserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Name == name {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.store))
	for _, u := range r.store {
		c := *u
		users = append(users, &c)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Name < users[j].Name
	})
	return users, nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/infra/logger"
	"github.com/comitanigiacomo/habitly/internal/infra/metrics"
)

var _ domain.HabitRepository = (*CachedHabitRepository)(nil)

const habitListTTL = 30 * time.Minute

// CachedHabitRepository caches the habit list of each user in Redis.
// Every write invalidates the owner's list.
type CachedHabitRepository struct {
	next  domain.HabitRepository
	cache *redis.Client
	log   *logrus.Entry
}

func NewCachedHabitRepository(next domain.HabitRepository, cache *redis.Client) *CachedHabitRepository {
	return &CachedHabitRepository{
		next:  next,
		cache: cache,
		log:   logger.Log.WithField("component", "habit_cache"),
	}
}

func (r *CachedHabitRepository) cacheKey(userID string) string {
	return fmt.Sprintf("habits:%s", userID)
}

func (r *CachedHabitRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		r.log.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate habit list")
	}
}

func (r *CachedHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		var habits []*domain.Habit
		if err := json.Unmarshal([]byte(val), &habits); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return habits, nil
		}

		r.log.WithField("user_id", userID).Warn("Corrupted habit list in cache, cleaning up key")
		r.cache.Del(ctx, key)
		metrics.CacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		r.log.WithError(err).Warn("Redis read error")
		metrics.CacheLookups.WithLabelValues("error").Inc()
	}

	habits, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(habits); err == nil {
		if setErr := r.cache.Set(ctx, key, data, habitListTTL).Err(); setErr != nil {
			r.log.WithError(setErr).Warn("Redis set error")
		}
	}

	return habits, nil
}

func (r *CachedHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedHabitRepository) GetByName(ctx context.Context, userID, name string) (*domain.Habit, error) {
	return r.next.GetByName(ctx, userID, name)
}

func (r *CachedHabitRepository) ListIDs(ctx context.Context) ([]string, error) {
	return r.next.ListIDs(ctx)
}

func (r *CachedHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Create(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx, habit.UserID)
	return nil
}

func (r *CachedHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Update(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx, habit.UserID)
	return nil
}

func (r *CachedHabitRepository) Delete(ctx context.Context, id string) error {
	return r.writeByID(ctx, id, func() error { return r.next.Delete(ctx, id) })
}

func (r *CachedHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	return r.writeByID(ctx, id, func() error { return r.next.UpdateStreaks(ctx, id, current, longest) })
}

// writeByID resolves the owner before write runs, since a deleted habit can
// no longer be looked up afterwards.
func (r *CachedHabitRepository) writeByID(ctx context.Context, id string, write func() error) error {
	habit, lookupErr := r.next.GetByID(ctx, id)

	if err := write(); err != nil {
		return err
	}

	if lookupErr == nil && habit != nil {
		r.invalidate(ctx, habit.UserID)
	}
	return nil
}

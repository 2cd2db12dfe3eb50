package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

var _ domain.HabitRepository = (*SQLHabitRepository)(nil)

// SQLHabitRepository stores habits in Postgres or SQLite. Queries use
// question mark placeholders and are rebound for the driver in use.
type SQLHabitRepository struct {
	db *sqlx.DB
}

func NewSQLHabitRepository(db *sqlx.DB) *SQLHabitRepository {
	return &SQLHabitRepository{db: db}
}

const habitColumns = `id, user_id, name, description, periodicity,
	current_streak, longest_streak, version, created_at, updated_at`

func (r *SQLHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	if h.Version == 0 {
		h.Version = 1
	}

	query := r.db.Rebind(`
		INSERT INTO habits (` + habitColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.UserID, h.Name, h.Description, string(h.Periodicity),
		h.CurrentStreak, h.LongestStreak, h.Version, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", domain.ErrHabitAlreadyExists, h.Name)
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	return nil
}

func (r *SQLHabitRepository) get(ctx context.Context, where string, args ...any) (*domain.Habit, error) {
	var h domain.Habit
	query := r.db.Rebind(`SELECT ` + habitColumns + ` FROM habits WHERE ` + where)

	if err := r.db.GetContext(ctx, &h, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	h.CreatedAt = h.CreatedAt.UTC()
	h.UpdatedAt = h.UpdatedAt.UTC()
	return &h, nil
}

func (r *SQLHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	return r.get(ctx, `id = ?`, id)
}

func (r *SQLHabitRepository) GetByName(ctx context.Context, userID, name string) (*domain.Habit, error) {
	return r.get(ctx, `user_id = ? AND name = ?`, userID, strings.TrimSpace(name))
}

func (r *SQLHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}
	query := r.db.Rebind(`
		SELECT ` + habitColumns + ` FROM habits
		WHERE user_id = ?
		ORDER BY created_at ASC, name ASC`)

	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	for _, h := range habits {
		h.CreatedAt = h.CreatedAt.UTC()
		h.UpdatedAt = h.UpdatedAt.UTC()
	}
	return habits, nil
}

func (r *SQLHabitRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM habits ORDER BY id`); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return ids, nil
}

// Update bumps the version on success. A version mismatch is reported as
// ErrHabitConflict, a missing row as ErrHabitNotFound.
func (r *SQLHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := r.db.Rebind(`
		UPDATE habits
		SET name = ?, description = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`)

	res, err := r.db.ExecContext(ctx, query, h.Name, h.Description, h.UpdatedAt, h.ID, h.Version)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", domain.ErrHabitAlreadyExists, h.Name)
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		var count int
		if err := r.db.GetContext(ctx, &count, r.db.Rebind(`SELECT count(*) FROM habits WHERE id = ?`), h.ID); err != nil {
			return fmt.Errorf("existence check failed: %w", err)
		}
		if count == 0 {
			return domain.ErrHabitNotFound
		}
		return domain.ErrHabitConflict
	}

	h.Version++
	return nil
}

// Delete removes the habit and its events in one transaction.
func (r *SQLHabitRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM habit_events WHERE habit_id = ?`), id); err != nil {
		return fmt.Errorf("delete events failed: %w", err)
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM habits WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return tx.Commit()
}

// UpdateStreaks refreshes the cached streaks without touching the version,
// so background recomputation never conflicts with user edits.
func (r *SQLHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	query := r.db.Rebind(`
		UPDATE habits
		SET current_streak = ?, longest_streak = ?, updated_at = ?
		WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, current, longest, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update streaks failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

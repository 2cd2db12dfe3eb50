package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

var _ domain.EventRepository = (*SQLEventRepository)(nil)

type SQLEventRepository struct {
	db *sqlx.DB
}

func NewSQLEventRepository(db *sqlx.DB) *SQLEventRepository {
	return &SQLEventRepository{db: db}
}

// eventRow mirrors habit_events. Dates travel as YYYY-MM-DD text and absent
// moods as NULL.
type eventRow struct {
	ID         string         `db:"id"`
	HabitID    string         `db:"habit_id"`
	UserID     string         `db:"user_id"`
	EventDate  string         `db:"event_date"`
	MoodBefore sql.NullString `db:"mood_before"`
	MoodAfter  sql.NullString `db:"mood_after"`
	CreatedAt  time.Time      `db:"created_at"`
}

const eventColumns = `id, habit_id, user_id, event_date, mood_before, mood_after, created_at`

func nullMood(m domain.Mood) sql.NullString {
	return sql.NullString{String: string(m), Valid: !m.IsZero()}
}

func (row eventRow) toDomain() (*domain.HabitEvent, error) {
	date, err := domain.ParseDate(row.EventDate)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", row.ID, err)
	}

	return &domain.HabitEvent{
		ID:         row.ID,
		HabitID:    row.HabitID,
		UserID:     row.UserID,
		Date:       date,
		MoodBefore: domain.Mood(row.MoodBefore.String),
		MoodAfter:  domain.Mood(row.MoodAfter.String),
		CreatedAt:  row.CreatedAt.UTC(),
	}, nil
}

func (r *SQLEventRepository) Create(ctx context.Context, e *domain.HabitEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	query := r.db.Rebind(`
		INSERT INTO habit_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.HabitID, e.UserID, domain.FormatDate(e.Date),
		nullMood(e.MoodBefore), nullMood(e.MoodAfter), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert habit event: %w", err)
	}
	return nil
}

func (r *SQLEventRepository) GetByID(ctx context.Context, id string) (*domain.HabitEvent, error) {
	var row eventRow
	query := r.db.Rebind(`SELECT ` + eventColumns + ` FROM habit_events WHERE id = ?`)

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return row.toDomain()
}

func (r *SQLEventRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.HabitEvent, error) {
	rows := []eventRow{}
	query := r.db.Rebind(`
		SELECT ` + eventColumns + ` FROM habit_events
		WHERE habit_id = ?
		ORDER BY seq ASC`)

	if err := r.db.SelectContext(ctx, &rows, query, habitID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	events := make([]*domain.HabitEvent, 0, len(rows))
	for _, row := range rows {
		e, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *SQLEventRepository) Delete(ctx context.Context, id string, userID string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM habit_events WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *SQLEventRepository) DeleteByDate(ctx context.Context, habitID string, date time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM habit_events WHERE habit_id = ? AND event_date = ?`),
		habitID, domain.FormatDate(date),
	)
	if err != nil {
		return 0, fmt.Errorf("delete query failed: %w", err)
	}
	return res.RowsAffected()
}

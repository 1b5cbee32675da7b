package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Altair788/no-more-procrastination/internal/domain/habit"
	"github.com/Altair788/no-more-procrastination/internal/domain/user"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrHabitNotFound = fmt.Errorf("habit not found")

type PostgresHabitRepository struct {
	db *sql.DB
}

func NewPostgresHabitRepository(db *sql.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

const habitColumns = `h.id, h.owner_id, h.location, to_char(h.time, 'HH24:MI'), h.action,
               h.is_pleasant, h.linked_action_id, la.action, h.frequency, h.reward,
               h.duration, h.is_public, h.created_at, h.updated_at,
               u.id, u.email, u.tg_id, u.is_active, u.created_at, u.updated_at`

// scanHabit reads one joined row into a Habit with its owner and, when the
// habit links a pleasant one, a minimal LinkedAction carrying the action text.
func scanHabit(rows *sql.Rows) (*habit.Habit, error) {
	h := habit.Habit{}
	owner := user.User{}
	var linkedAction sql.NullString

	if err := rows.Scan(
		&h.ID, &h.OwnerID, &h.Location, &h.Time, &h.Action,
		&h.IsPleasant, &h.LinkedActionID, &linkedAction, &h.Frequency, &h.Reward,
		&h.Duration, &h.IsPublic, &h.CreatedAt, &h.UpdatedAt,
		&owner.ID, &owner.Email, &owner.TgID, &owner.IsActive, &owner.CreatedAt, &owner.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("error scanning habit row: %w", err)
	}

	h.Owner = &owner
	if h.LinkedActionID.Valid && linkedAction.Valid {
		h.LinkedAction = &habit.Habit{
			ID:         h.LinkedActionID.Int64,
			Action:     linkedAction.String,
			IsPleasant: true,
		}
	}
	return &h, nil
}

func (r *PostgresHabitRepository) queryHabits(ctx context.Context, query string, args ...interface{}) ([]*habit.Habit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying habits: %w", err)
	}
	defer rows.Close()

	habits := make([]*habit.Habit, 0)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habit rows: %w", err)
	}
	return habits, nil
}

// ListDue returns all habits due at or before the given "HH24:MI:SS" value,
// with owners eager-loaded so the dispatcher never goes back to storage.
func (r *PostgresHabitRepository) ListDue(ctx context.Context, timeOfDay string) ([]*habit.Habit, error) {
	query := `SELECT ` + habitColumns + `
               FROM habits h
               JOIN users u ON u.id = h.owner_id
               LEFT JOIN habits la ON la.id = h.linked_action_id
               WHERE h.time <= $1::time
               ORDER BY h.id`
	return r.queryHabits(ctx, query, timeOfDay)
}

func (r *PostgresHabitRepository) ListByOwnerTelegramID(ctx context.Context, tgID int64) ([]*habit.Habit, error) {
	query := `SELECT ` + habitColumns + `
               FROM habits h
               JOIN users u ON u.id = h.owner_id
               LEFT JOIN habits la ON la.id = h.linked_action_id
               WHERE u.tg_id = $1
               ORDER BY h.time, h.id`
	return r.queryHabits(ctx, query, tgID)
}

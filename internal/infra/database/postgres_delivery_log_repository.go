package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Altair788/no-more-procrastination/internal/domain/notification"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrDuplicateDeliveryRecord = fmt.Errorf("reminder delivery already recorded for this habit and day")

// PostgresDeliveryLogRepository persists the per-day reminder delivery log.
// The unique constraint on (habit_id, sent_on) is what makes "at most one
// reminder per habit per day" hold even across overlapping dispatch runs.
type PostgresDeliveryLogRepository struct {
	db *sql.DB
}

func NewPostgresDeliveryLogRepository(db *sql.DB) *PostgresDeliveryLogRepository {
	return &PostgresDeliveryLogRepository{db: db}
}

func (r *PostgresDeliveryLogRepository) WasSent(ctx context.Context, habitID int64, day time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reminder_deliveries WHERE habit_id = $1 AND sent_on = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, habitID, dateOnly(day)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking reminder delivery log: %w", err)
	}
	return exists, nil
}

func (r *PostgresDeliveryLogRepository) RecordSent(ctx context.Context, habitID int64, day time.Time, channel notification.ChannelKind) error {
	query := `INSERT INTO reminder_deliveries (habit_id, sent_on, channel)
               VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, habitID, dateOnly(day), channel)
	if err != nil {
		if strings.Contains(err.Error(), "reminder_deliveries_habit_day_unique") {
			return ErrDuplicateDeliveryRecord
		}
		return fmt.Errorf("error recording reminder delivery: %w", err)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

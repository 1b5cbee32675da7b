package habit

import (
	"context"
)

// Repository defines read access to habits.
type Repository interface {
	// ListDue returns all habits whose due time-of-day is at or before the
	// given "HH:MM:SS" value, with owners and linked actions eager-loaded.
	ListDue(ctx context.Context, timeOfDay string) ([]*Habit, error)
	// ListByOwnerTelegramID returns the habits of the owner bound to the
	// given Telegram chat ID, ordered by due time.
	ListByOwnerTelegramID(ctx context.Context, tgID int64) ([]*Habit, error)
}

package user

import (
	"context"
)

// Repository defines read access to habit owners.
type Repository interface {
	GetByTelegramID(ctx context.Context, tgID int64) (*User, error)
}

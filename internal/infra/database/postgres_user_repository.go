package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Altair788/no-more-procrastination/internal/domain/user"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrUserNotFound = fmt.Errorf("user not found")

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByTelegramID(ctx context.Context, tgID int64) (*user.User, error) {
	query := `SELECT id, email, tg_id, is_active, created_at, updated_at
               FROM users WHERE tg_id = $1`
	u := &user.User{}
	err := r.db.QueryRowContext(ctx, query, tgID).Scan(&u.ID, &u.Email, &u.TgID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by Telegram ID: %w", err)
	}
	return u, nil
}

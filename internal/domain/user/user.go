package user

import (
	"database/sql"
	"time"
)

// User is the read model of a habit owner. Accounts are created and managed
// by the web application; this service only reads them for delivery routing.
type User struct {
	ID        int64
	Email     string
	TgID      sql.NullInt64 // Telegram chat ID, absent until the user links the account
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

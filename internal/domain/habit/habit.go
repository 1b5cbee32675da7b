package habit

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Altair788/no-more-procrastination/internal/domain/user"
)

// Habit represents a recurring user-defined action with a due time and an
// optional reward or linked pleasant habit. Records are owned by the web
// application; the dispatcher only reads them.
type Habit struct {
	ID             int64
	OwnerID        int64
	Owner          *user.User // eager-loaded for dispatch
	Location       string
	Time           string // time-of-day, "HH:MM"
	Action         string
	IsPleasant     bool
	LinkedActionID sql.NullInt64
	LinkedAction   *Habit // eager-loaded pleasant habit, nil unless LinkedActionID is set
	Frequency      int    // days between executions, 1..7
	Reward         string
	Duration       int // seconds to complete, capped at MaxDurationSeconds
	IsPublic       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NoRewardMessage is the fragment used when a habit has neither a reward
// nor a linked pleasant habit.
const NoRewardMessage = "Вознаграждение отсутствует."

// ResolveReward composes the reward fragment of a reminder message.
// The model invariant guarantees at most one of Reward/LinkedAction is set.
func ResolveReward(h *Habit) string {
	if h.Reward != "" {
		return fmt.Sprintf("Вознаграждение: %s", h.Reward)
	}
	if h.LinkedAction != nil {
		return fmt.Sprintf("Связанная приятная привычка: %s", h.LinkedAction.Action)
	}
	return NoRewardMessage
}

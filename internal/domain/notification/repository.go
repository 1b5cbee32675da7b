package notification

import (
	"context"
	"time"
)

// DeliveryLogRepository records which habits were reminded on which day,
// enforcing at most one reminder per habit per day across dispatch runs.
type DeliveryLogRepository interface {
	// WasSent reports whether a reminder for the habit was already handed
	// off on the given day. Only the date part of day is significant.
	WasSent(ctx context.Context, habitID int64, day time.Time) (bool, error)
	// RecordSent marks the habit as reminded on the given day via the given
	// channel. A duplicate record returns ErrDuplicateDeliveryRecord from
	// the storage layer; callers may treat that as benign.
	RecordSent(ctx context.Context, habitID int64, day time.Time, channel ChannelKind) error
}

package notification

import "time"

// RetryPolicy bounds the automatic retry of a delivery task.
// A task makes at most MaxRetries+1 attempts, separated by Backoff.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

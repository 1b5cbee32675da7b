package notification

import "context"

// DispatchProgress is the per-run progress snapshot published once per
// processed habit. It lives only for the duration of a dispatch run.
type DispatchProgress struct {
	Current int
	Total   int
	Status  string
}

// DeliveryOutcome is the terminal result of one delivery task invocation.
// Not persisted; exists only for task-status reporting.
type DeliveryOutcome struct {
	Success  bool
	ChatID   int64
	Attempts int
	Err      error
}

// ProgressPublisher is the side channel external observers poll for task
// status. Publish failures must never abort the publishing task.
type ProgressPublisher interface {
	PublishDispatchProgress(ctx context.Context, taskID string, p DispatchProgress) error
	PublishDeliveryStatus(ctx context.Context, taskID string, status string) error
}

package email

import "context"

// Sender defines an interface for sending outbound email.
// This decouples the application logic from the specific mail provider.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

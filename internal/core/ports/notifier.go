package ports

import "context"

// NotificationService delivers user-facing notifications. Delivery is
// best-effort; callers treat failures as non-fatal.
type NotificationService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendInApp(ctx context.Context, userID, title, body string) error
}

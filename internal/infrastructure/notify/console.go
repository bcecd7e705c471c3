// Package notify provides notification delivery. The console service is
// the development implementation: it logs instead of sending.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// ConsoleNotificationService logs notifications through zerolog. Real
// email/in-app delivery plugs in behind the same port.
type ConsoleNotificationService struct {
	log zerolog.Logger
}

func NewConsoleNotificationService(log zerolog.Logger) *ConsoleNotificationService {
	return &ConsoleNotificationService{log: log}
}

func (s *ConsoleNotificationService) SendEmail(_ context.Context, to, subject, body string) error {
	s.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("notification: send email")
	return nil
}

func (s *ConsoleNotificationService) SendInApp(_ context.Context, userID, title, body string) error {
	s.log.Info().
		Str("user_id", userID).
		Str("title", title).
		Str("body", body).
		Msg("notification: send in-app")
	return nil
}

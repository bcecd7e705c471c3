package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bountyhq/platform-api/internal/core/domain"
	"github.com/bountyhq/platform-api/internal/core/ports"
)

// SessionResolver exchanges an inbound credential for a verified Principal
// via the identity provider. Missing, malformed, rejected, and
// provider-errored credentials are all reported identically as
// Unauthorized so the caller learns nothing about provider internals.
type SessionResolver struct {
	provider ports.IdentityProvider
	log      zerolog.Logger
}

func NewSessionResolver(provider ports.IdentityProvider, log zerolog.Logger) *SessionResolver {
	return &SessionResolver{provider: provider, log: log}
}

// Resolve verifies rawCredential. A failed resolution is terminal for the
// request; there are no retries and no session mutation.
func (s *SessionResolver) Resolve(ctx context.Context, rawCredential string) (domain.Principal, error) {
	if strings.TrimSpace(rawCredential) == "" {
		return domain.Principal{}, domain.Unauthorized("")
	}

	principal, err := s.provider.VerifyCredential(ctx, rawCredential)
	if err != nil {
		s.log.Debug().Err(err).Msg("credential verification failed")
		return domain.Principal{}, domain.Unauthorized("Invalid or expired session").WithCause(err)
	}
	if principal.UserID == "" {
		return domain.Principal{}, domain.Unauthorized("Invalid or expired session")
	}

	return principal, nil
}

package ports

import (
	"context"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

// IdentityProvider verifies inbound credentials. Implementations wrap the
// external provider; a rejected or errored verification must surface as an
// error here, never as a zero-value principal.
type IdentityProvider interface {
	VerifyCredential(ctx context.Context, raw string) (domain.Principal, error)
}

// TokenIssuer mints a credential for an authenticated user. Only the local
// identity provider implements this; issuance semantics otherwise belong to
// the external provider.
type TokenIssuer interface {
	IssueToken(user *domain.User) (string, error)
}

// UserRepository persists identity accounts for the local provider.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// SessionResolver exchanges a raw credential for a verified Principal.
// Resolution is terminal: no retries, no session mutation.
type SessionResolver interface {
	Resolve(ctx context.Context, rawCredential string) (domain.Principal, error)
}

// ContextBuilder enriches a Principal into an ApiContext using the profile
// store. Building never succeeds for an unverifiable principal and never
// fails merely because email verification is incomplete.
type ContextBuilder interface {
	Build(ctx context.Context, principal domain.Principal) (domain.ApiContext, error)
}

package ports

import (
	"context"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

// ProfileStore exposes the externally owned profile and org-membership
// records consumed by the context builder and the org-admin guard.
type ProfileStore interface {
	// GetProfile returns the profile for userID, or
	// domain.ErrProfileNotFound when no record exists.
	GetProfile(ctx context.Context, userID string) (domain.Profile, error)
	// IsOrgAdmin reports whether userID administers orgID.
	IsOrgAdmin(ctx context.Context, userID, orgID string) (bool, error)
}

// ProfileWriter mutates profile records; used by the identity service at
// registration and verification time.
type ProfileWriter interface {
	UpsertProfile(ctx context.Context, profile domain.Profile) error
}

// ProfileRepository is the full profile surface: lookups for the pipeline
// plus mutations for the identity module.
type ProfileRepository interface {
	ProfileStore
	ProfileWriter
}

// ProfileCacheInvalidator drops cached profile state after a mutation so
// the next request observes it.
type ProfileCacheInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/bountyhq/platform-api/internal/core/domain"
	"github.com/bountyhq/platform-api/internal/core/ports"
)

// ContextBuilder turns a verified Principal into the per-request
// ApiContext by consulting the profile store. A principal whose backing
// profile record is gone (orphaned session) cannot get a context; an
// unverified user still can, with Verified=false — verification is a
// guard concern, not a construction concern.
type ContextBuilder struct {
	profiles ports.ProfileStore
	log      zerolog.Logger
}

func NewContextBuilder(profiles ports.ProfileStore, log zerolog.Logger) *ContextBuilder {
	return &ContextBuilder{profiles: profiles, log: log}
}

// Build looks up the principal's profile and derives the context. Any
// lookup failure surfaces as Unauthorized; the pipeline never falls back
// to an anonymous or low-privilege context.
func (b *ContextBuilder) Build(ctx context.Context, principal domain.Principal) (domain.ApiContext, error) {
	if principal.UserID == "" {
		return domain.ApiContext{}, domain.Unauthorized("")
	}

	profile, err := b.profiles.GetProfile(ctx, principal.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			b.log.Error().Err(err).Str("user_id", principal.UserID).Msg("profile lookup failed")
		}
		return domain.ApiContext{}, domain.Unauthorized("Invalid or expired session").WithCause(err)
	}

	role := profile.Role
	if !role.Valid() {
		// No explicit role claim: default to the least-privileged role.
		role = domain.RoleHacker
	}

	return domain.ApiContext{
		UserID:   principal.UserID,
		OrgID:    profile.OrgID,
		Role:     role,
		Verified: profile.Verified,
	}, nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bountyhq/platform-api/internal/core/domain"
	"github.com/bountyhq/platform-api/internal/core/ports"
)

// IdentityService implements registration and login against the local
// identity provider.
type IdentityService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	cache    ports.ProfileCacheInvalidator
	issuer   ports.TokenIssuer
	notifier ports.NotificationService
	log      zerolog.Logger
}

// NewIdentityService builds the service. cache may be nil when no profile
// cache sits in front of the store.
func NewIdentityService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	cache ports.ProfileCacheInvalidator,
	issuer ports.TokenIssuer,
	notifier ports.NotificationService,
	log zerolog.Logger,
) *IdentityService {
	return &IdentityService{users: users, profiles: profiles, cache: cache, issuer: issuer, notifier: notifier, log: log}
}

// Register creates an account and its backing profile. New accounts start
// unverified; verification state is enforced later by guards, never here.
func (s *IdentityService) Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.BadRequest("email and password are required")
	}
	if role == "" {
		role = domain.RoleHacker
	}
	if !role.Valid() {
		return nil, domain.BadRequest("unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.Internal(err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.Conflict("account already exists")
		}
		return nil, domain.Internal(err)
	}

	if err := s.profiles.UpsertProfile(ctx, domain.Profile{
		UserID:   created.ID,
		Role:     created.Role,
		Verified: false,
	}); err != nil {
		return nil, domain.Internal(err)
	}

	// Verification email is best-effort; a delivery failure must not fail
	// the registration.
	if err := s.notifier.SendEmail(ctx, created.Email, "Verify your email",
		"Welcome to the platform. Please verify your email address to unlock submissions."); err != nil {
		s.log.Warn().Err(err).Str("user_id", created.ID).Msg("verification email delivery failed")
	}

	return created, nil
}

// Login authenticates an account and mints a session credential.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.Unauthorized("Invalid credentials")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.Unauthorized("Invalid credentials")
		}
		return "", nil, domain.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.Unauthorized("Invalid credentials")
	}

	token, err := s.issuer.IssueToken(user)
	if err != nil {
		return "", nil, domain.Internal(err)
	}

	return token, user, nil
}

// Verify marks the caller's email as verified and drops any cached copy
// of the profile so the flag is visible on the next request. Idempotent.
func (s *IdentityService) Verify(ctx context.Context, userID string) error {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.Unauthorized("Invalid or expired session").WithCause(err)
		}
		return domain.Internal(err)
	}
	if profile.Verified {
		return nil
	}

	profile.Verified = true
	if err := s.profiles.UpsertProfile(ctx, profile); err != nil {
		return domain.Internal(err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}

	if err := s.notifier.SendInApp(ctx, userID, "Email verified",
		"Your email address has been verified. You can now participate in programs."); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("verification notification delivery failed")
	}
	return nil
}

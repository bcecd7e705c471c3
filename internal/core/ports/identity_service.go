package ports

import (
	"context"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

// IdentityService handles account registration and login against the local
// identity provider.
type IdentityService interface {
	Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Verify(ctx context.Context, userID string) error
}

package ports

import (
	"context"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

// OrganizationRepository persists organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	FindByID(ctx context.Context, id string) (*domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
}

// OrganizationService is the domain surface behind the organization routes.
type OrganizationService interface {
	Create(ctx context.Context, ac domain.ApiContext, name, website string) (*domain.Organization, error)
	Get(ctx context.Context, id string) (*domain.Organization, error)
	Update(ctx context.Context, ac domain.ApiContext, id, name, website string) (*domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
}

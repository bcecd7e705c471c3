package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bountyhq/platform-api/internal/core/domain"
	"github.com/bountyhq/platform-api/internal/core/ports"
)

// OrganizationService implements the organization module. Authorization is
// enforced by the guard chain in front of the handlers; this service only
// performs the mutation and records the audit trail after it succeeds.
type OrganizationService struct {
	orgs  ports.OrganizationRepository
	audit ports.AuditSink
}

func NewOrganizationService(orgs ports.OrganizationRepository, audit ports.AuditSink) *OrganizationService {
	return &OrganizationService{orgs: orgs, audit: audit}
}

// Create registers a new organization with the caller as its first admin.
func (s *OrganizationService) Create(ctx context.Context, ac domain.ApiContext, name, website string) (*domain.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.BadRequest("organization name is required")
	}

	now := time.Now().UTC()
	created, err := s.orgs.Create(ctx, &domain.Organization{
		Name:      name,
		Website:   strings.TrimSpace(website),
		AdminIDs:  []string{ac.UserID},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrgExists) {
			return nil, domain.Conflict("organization already exists")
		}
		return nil, domain.Internal(err)
	}

	s.audit.Record(ctx, ac, "organization.create", "organization", created.ID, map[string]any{
		"name": created.Name,
	})
	return created, nil
}

// Get returns one organization by id.
func (s *OrganizationService) Get(ctx context.Context, id string) (*domain.Organization, error) {
	org, err := s.orgs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrgNotFound) {
			return nil, domain.NotFound("organization not found")
		}
		return nil, domain.Internal(err)
	}
	return org, nil
}

// Update changes an organization's mutable fields. The org-admin guard has
// already vetted the caller; the audit entry is recorded only once the
// update has been persisted.
func (s *OrganizationService) Update(ctx context.Context, ac domain.ApiContext, id, name, website string) (*domain.Organization, error) {
	org, err := s.orgs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrgNotFound) {
			return nil, domain.NotFound("organization not found")
		}
		return nil, domain.Internal(err)
	}

	if name = strings.TrimSpace(name); name != "" {
		org.Name = name
	}
	if website = strings.TrimSpace(website); website != "" {
		org.Website = website
	}
	org.UpdatedAt = time.Now().UTC()

	updated, err := s.orgs.Update(ctx, org)
	if err != nil {
		return nil, domain.Internal(err)
	}

	s.audit.Record(ctx, ac, "organization.update", "organization", updated.ID, map[string]any{
		"name": updated.Name,
	})
	return updated, nil
}

// List returns all organizations; reserved for platform admins by the
// route's guard chain.
func (s *OrganizationService) List(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := s.orgs.List(ctx)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return orgs, nil
}

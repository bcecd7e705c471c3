package guard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

func testCtx(role domain.Role, verified bool) *domain.ApiContext {
	return &domain.ApiContext{UserID: "u1", Role: role, Verified: verified}
}

func assertAppError(t *testing.T, err error, code string, status int) *domain.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	app, ok := domain.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if app.Code != code {
		t.Fatalf("expected code %s, got %s", code, app.Code)
	}
	if app.Status != status {
		t.Fatalf("expected status %d, got %d", status, app.Status)
	}
	return app
}

func TestAuthenticated_PassesWithContext(t *testing.T) {
	g := Authenticated()
	if err := g.Check(context.Background(), testCtx(domain.RoleHacker, false), Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthenticated_NilContext(t *testing.T) {
	g := Authenticated()
	err := g.Check(context.Background(), nil, Params{})
	assertAppError(t, err, domain.CodeUnauthorized, 401)
}

func TestVerified(t *testing.T) {
	g := Verified()

	if err := g.Check(context.Background(), testCtx(domain.RoleHacker, true), Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.Check(context.Background(), testCtx(domain.RoleHacker, false), Params{})
	app := assertAppError(t, err, domain.CodeForbidden, 403)
	if app.Message != "Email verification required" {
		t.Fatalf("unexpected message: %q", app.Message)
	}
}

func TestHasRole(t *testing.T) {
	g := HasRole(domain.RoleOrgAdmin)

	if err := g.Check(context.Background(), testCtx(domain.RoleOrgAdmin, false), Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.Check(context.Background(), testCtx(domain.RoleHacker, true), Params{})
	assertAppError(t, err, domain.CodeForbidden, 403)
}

func TestPlatformAdmin(t *testing.T) {
	g := PlatformAdmin()

	// Passes regardless of other fields.
	if err := g.Check(context.Background(), testCtx(domain.RolePlatformAdmin, false), Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.Check(context.Background(), testCtx(domain.RoleOrgAdmin, true), Params{})
	app := assertAppError(t, err, domain.CodeForbidden, 403)
	if app.Message != "Platform admin access required" {
		t.Fatalf("unexpected message: %q", app.Message)
	}
}

func TestOrgAdminOf_UsesInjectedPredicate(t *testing.T) {
	allow := func(_ context.Context, userID, orgID string) (bool, error) {
		return userID == "u1" && orgID == "org42", nil
	}
	g := OrgAdminOf(allow)

	// Passes independent of the caller's role.
	if err := g.Check(context.Background(), testCtx(domain.RoleHacker, false), Params{OrgID: "org42"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.Check(context.Background(), testCtx(domain.RoleOrgAdmin, true), Params{OrgID: "org99"})
	app := assertAppError(t, err, domain.CodeForbidden, 403)
	if !strings.Contains(app.Message, "org99") {
		t.Fatalf("failure message should reference the org id, got %q", app.Message)
	}
}

func TestOrgAdminOf_PredicateError(t *testing.T) {
	g := OrgAdminOf(func(context.Context, string, string) (bool, error) {
		return false, errors.New("store down")
	})

	err := g.Check(context.Background(), testCtx(domain.RoleHacker, true), Params{OrgID: "org1"})
	app := assertAppError(t, err, domain.CodeInternal, 500)
	if strings.Contains(app.Message, "store down") {
		t.Fatalf("internal detail leaked to caller: %q", app.Message)
	}
}

func TestChain_ShortCircuits(t *testing.T) {
	tripped := Guard{
		Name: "tripped",
		Check: func(context.Context, *domain.ApiContext, Params) error {
			t.Fatalf("guard after a failure must not be evaluated")
			return nil
		},
	}

	chain := Chain{Verified(), tripped}
	err := chain.Evaluate(context.Background(), testCtx(domain.RoleHacker, false), Params{})
	app := assertAppError(t, err, domain.CodeForbidden, 403)
	if app.Message != "Email verification required" {
		t.Fatalf("expected the first failure to be reported, got %q", app.Message)
	}
}

func TestChain_AllPass(t *testing.T) {
	chain := Chain{Authenticated(), Verified(), HasRole(domain.RoleHacker)}
	if err := chain.Evaluate(context.Background(), testCtx(domain.RoleHacker, true), Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

type fakeResolver struct {
	principal domain.Principal
	err       error
}

func (f *fakeResolver) Resolve(_ context.Context, raw string) (domain.Principal, error) {
	if raw == "" {
		return domain.Principal{}, domain.Unauthorized("")
	}
	return f.principal, f.err
}

type fakeBuilder struct {
	ac  domain.ApiContext
	err error
}

func (f *fakeBuilder) Build(context.Context, domain.Principal) (domain.ApiContext, error) {
	return f.ac, f.err
}

func newAuthContext(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidToken(t *testing.T) {
	c, rec := newAuthContext(t, "Bearer good-token")

	mw := Auth(
		&fakeResolver{principal: domain.Principal{UserID: "u1"}},
		&fakeBuilder{ac: domain.ApiContext{UserID: "u1", Role: domain.RoleHacker, Verified: true}},
	)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		ac := ApiContextFrom(c)
		if ac == nil || ac.UserID != "u1" {
			t.Fatalf("context not attached: %+v", ac)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingCredential(t *testing.T) {
	c, _ := newAuthContext(t, "")

	mw := Auth(&fakeResolver{}, &fakeBuilder{})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if app, ok := domain.AsAppError(err); !ok || app.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	c, _ := newAuthContext(t, "Token abc")

	mw := Auth(&fakeResolver{principal: domain.Principal{UserID: "u1"}}, &fakeBuilder{})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if app, ok := domain.AsAppError(err); !ok || app.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestAuth_RejectedCredential(t *testing.T) {
	c, _ := newAuthContext(t, "Bearer expired")

	mw := Auth(
		&fakeResolver{err: domain.Unauthorized("Invalid or expired session")},
		&fakeBuilder{},
	)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if app, ok := domain.AsAppError(err); !ok || app.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestAuth_OrphanedSession(t *testing.T) {
	c, _ := newAuthContext(t, "Bearer good-token")

	mw := Auth(
		&fakeResolver{principal: domain.Principal{UserID: "ghost"}},
		&fakeBuilder{err: domain.Unauthorized("Invalid or expired session").WithCause(errors.New("profile missing"))},
	)

	handler := mw(func(c echo.Context) error {
		t.Fatalf("no ApiContext may exist for an orphaned session")
		return nil
	})

	err := handler(c)
	if app, ok := domain.AsAppError(err); !ok || app.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestAuth_SessionCookieFallback(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "cookie-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(
		&fakeResolver{principal: domain.Principal{UserID: "u1"}},
		&fakeBuilder{ac: domain.ApiContext{UserID: "u1", Role: domain.RoleHacker}},
	)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

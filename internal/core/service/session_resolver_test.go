package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

type fakeProvider struct {
	principal domain.Principal
	err       error
	calls     int
}

func (f *fakeProvider) VerifyCredential(context.Context, string) (domain.Principal, error) {
	f.calls++
	return f.principal, f.err
}

func TestSessionResolver_EmptyCredential(t *testing.T) {
	provider := &fakeProvider{}
	r := NewSessionResolver(provider, zerolog.Nop())

	_, err := r.Resolve(context.Background(), "   ")
	app, ok := domain.AsAppError(err)
	if !ok || app.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider must not be called for a missing credential")
	}
}

func TestSessionResolver_ProviderRejection(t *testing.T) {
	r := NewSessionResolver(&fakeProvider{err: errors.New("token expired at provider: internal trace id 123")}, zerolog.Nop())

	_, err := r.Resolve(context.Background(), "tok")
	app, ok := domain.AsAppError(err)
	if !ok || app.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if strings.Contains(app.Message, "trace id") {
		t.Fatalf("provider detail leaked into caller message: %q", app.Message)
	}
}

func TestSessionResolver_EmptySubject(t *testing.T) {
	r := NewSessionResolver(&fakeProvider{principal: domain.Principal{}}, zerolog.Nop())

	_, err := r.Resolve(context.Background(), "tok")
	if app, ok := domain.AsAppError(err); !ok || app.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED for principal without user id, got %v", err)
	}
}

func TestSessionResolver_Success(t *testing.T) {
	want := domain.Principal{UserID: "u1", Claims: map[string]any{"role": "hacker"}}
	r := NewSessionResolver(&fakeProvider{principal: want}, zerolog.Nop())

	got, err := r.Resolve(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "u1" {
		t.Fatalf("expected user id u1, got %q", got.UserID)
	}
}

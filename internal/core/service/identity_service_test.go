package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	f.nextID++
	u := *user
	u.ID = "user-" + strconv.Itoa(f.nextID)
	f.byEmail[u.Email] = &u
	return &u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type fakeProfileRepo struct {
	profiles map[string]domain.Profile
	upserts  []domain.Profile
	err      error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]domain.Profile{}}
}

func (f *fakeProfileRepo) GetProfile(_ context.Context, userID string) (domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) IsOrgAdmin(context.Context, string, string) (bool, error) {
	return false, nil
}

func (f *fakeProfileRepo) UpsertProfile(_ context.Context, p domain.Profile) error {
	if f.err != nil {
		return f.err
	}
	f.profiles[p.UserID] = p
	f.upserts = append(f.upserts, p)
	return nil
}

type fakeInvalidator struct {
	invalidated []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, userID string) {
	f.invalidated = append(f.invalidated, userID)
}

type fakeIssuer struct{ err error }

func (f *fakeIssuer) IssueToken(user *domain.User) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + user.ID, nil
}

type fakeNotifier struct {
	emails int
	err    error
}

func (f *fakeNotifier) SendEmail(context.Context, string, string, string) error {
	f.emails++
	return f.err
}

func (f *fakeNotifier) SendInApp(context.Context, string, string, string) error { return nil }

func newIdentityService(users *fakeUserRepo, profiles *fakeProfileRepo, notifier *fakeNotifier) *IdentityService {
	return NewIdentityService(users, profiles, nil, &fakeIssuer{}, notifier, zerolog.Nop())
}

func TestIdentityService_Register(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	notifier := &fakeNotifier{}
	s := newIdentityService(users, profiles, notifier)

	user, err := s.Register(context.Background(), "Alice@Example.com", "hunter2hunter2", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalised: %q", user.Email)
	}
	if user.Role != domain.RoleHacker {
		t.Fatalf("expected default role hacker, got %q", user.Role)
	}
	if user.PasswordHash == "hunter2hunter2" {
		t.Fatalf("password stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2hunter2")) != nil {
		t.Fatalf("stored hash does not match password")
	}

	if len(profiles.upserts) != 1 {
		t.Fatalf("expected one profile upsert, got %d", len(profiles.upserts))
	}
	if p := profiles.upserts[0]; p.UserID != user.ID || p.Verified {
		t.Fatalf("new profile must start unverified: %+v", p)
	}
	if notifier.emails != 1 {
		t.Fatalf("expected one verification email, got %d", notifier.emails)
	}
}

func TestIdentityService_RegisterDuplicate(t *testing.T) {
	users := newFakeUserRepo()
	s := newIdentityService(users, newFakeProfileRepo(), &fakeNotifier{})

	if _, err := s.Register(context.Background(), "a@b.com", "password123", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.Register(context.Background(), "a@b.com", "password123", "")
	if app, ok := domain.AsAppError(err); !ok || app.Code != domain.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestIdentityService_RegisterNotifierFailureIsSwallowed(t *testing.T) {
	s := newIdentityService(newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{err: errors.New("smtp down")})

	if _, err := s.Register(context.Background(), "a@b.com", "password123", ""); err != nil {
		t.Fatalf("notifier failure must not fail registration: %v", err)
	}
}

func TestIdentityService_RegisterUnknownRole(t *testing.T) {
	s := newIdentityService(newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})

	_, err := s.Register(context.Background(), "a@b.com", "password123", "superuser")
	if app, ok := domain.AsAppError(err); !ok || app.Code != domain.CodeBadRequest {
		t.Fatalf("expected BAD_REQUEST, got %v", err)
	}
}

func TestIdentityService_Login(t *testing.T) {
	users := newFakeUserRepo()
	s := newIdentityService(users, newFakeProfileRepo(), &fakeNotifier{})

	registered, err := s.Register(context.Background(), "a@b.com", "password123", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, user, err := s.Login(context.Background(), "a@b.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || user.ID != registered.ID {
		t.Fatalf("unexpected login result: token=%q user=%+v", token, user)
	}
}

func TestIdentityService_LoginWrongPassword(t *testing.T) {
	s := newIdentityService(newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})
	if _, err := s.Register(context.Background(), "a@b.com", "password123", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := s.Login(context.Background(), "a@b.com", "wrong")
	if app, ok := domain.AsAppError(err); !ok || app.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestIdentityService_LoginUnknownUser(t *testing.T) {
	s := newIdentityService(newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})

	_, _, err := s.Login(context.Background(), "nobody@b.com", "password123")
	app, ok := domain.AsAppError(err)
	if !ok || app.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	// Same failure shape as a wrong password: no account enumeration.
	if app.Message != "Invalid credentials" {
		t.Fatalf("unexpected message: %q", app.Message)
	}
}

func TestIdentityService_Verify(t *testing.T) {
	profiles := newFakeProfileRepo()
	cache := &fakeInvalidator{}
	s := NewIdentityService(newFakeUserRepo(), profiles, cache, &fakeIssuer{}, &fakeNotifier{}, zerolog.Nop())

	profiles.profiles["u1"] = domain.Profile{UserID: "u1", Role: domain.RoleHacker, Verified: false}

	if err := s.Verify(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !profiles.profiles["u1"].Verified {
		t.Fatalf("profile not marked verified")
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "u1" {
		t.Fatalf("cached profile must be invalidated, got %v", cache.invalidated)
	}

	// Idempotent: a second call is a no-op.
	if err := s.Verify(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.invalidated) != 1 {
		t.Fatalf("no second invalidation expected, got %v", cache.invalidated)
	}
}

func TestIdentityService_VerifyOrphanedProfile(t *testing.T) {
	s := newIdentityService(newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})

	err := s.Verify(context.Background(), "ghost")
	if app, ok := domain.AsAppError(err); !ok || app.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

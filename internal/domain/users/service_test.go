package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type fakeUsersRepo struct {
	users map[string]*User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]*User)}
}

func (r *fakeUsersRepo) Create(ctx context.Context, user *User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUsersRepo) GetByID(ctx context.Context, userID string) (*User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUsersRepo) EnsureUser(ctx context.Context, user *User) error {
	if _, ok := r.users[user.ID]; ok {
		return nil
	}
	return r.Create(ctx, user)
}

func newTestService() (*Service, *fakeUsersRepo) {
	repo := newFakeUsersRepo()
	return NewServiceWithCost(repo, NewTokenIssuer("test-secret", time.Hour), bcrypt.MinCost), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{Name: " Ana ", Email: " Ana@Example.com ", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	if session.User.Email != "ana@example.com" || session.User.Name != "Ana" {
		t.Fatalf("unexpected user: %+v", session.User)
	}
	if session.Token == "" {
		t.Fatalf("expected token")
	}
	if repo.users[session.User.ID].PasswordHash == "secret123" {
		t.Fatalf("expected password to be hashed")
	}

	login, err := svc.Login(ctx, "ANA@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
	if login.User.ID != session.User.ID {
		t.Fatalf("expected same user on login")
	}

	userID, err := svc.Authenticate(ctx, login.Token)
	if err != nil {
		t.Fatalf("unexpected authenticate error: %v", err)
	}
	if userID != session.User.ID {
		t.Fatalf("expected token to resolve to %s, got %s", session.User.ID, userID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Register(ctx, RegisterInput{Name: "Otra", Email: "ANA@example.com", Password: "secret456"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "123"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _ = svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})

	if _, err := svc.Login(ctx, "ana@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthenticateRejectsForeignToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	session, _ := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	foreign, err := NewTokenIssuer("other-secret", time.Hour).Issue(session.User)
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}

	if _, err := svc.Authenticate(ctx, foreign); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Issue(User{ID: "bbbbbbbb-0000-0000-0000-000000000001", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := issuer.Parse(token); err != nil {
		t.Fatalf("expected fresh token to parse, got %v", err)
	}

	issuer.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	userID := "bbbbbbbb-0000-0000-0000-000000000009"

	for i := 0; i < 2; i++ {
		if err := svc.EnsureUser(ctx, userID, "Dev@Example.com", "Dev"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(repo.users) != 1 || repo.users[userID].Email != "dev@example.com" {
		t.Fatalf("unexpected users: %+v", repo.users)
	}
	if err := svc.EnsureUser(ctx, "not-a-uuid", "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

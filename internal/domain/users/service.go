package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type Service struct {
	repo       Repository
	tokens     *TokenIssuer
	bcryptCost int
}

func NewService(repo Repository, tokens *TokenIssuer) *Service {
	return NewServiceWithCost(repo, tokens, bcrypt.DefaultCost)
}

func NewServiceWithCost(repo Repository, tokens *TokenIssuer, cost int) *Service {
	return &Service{repo: repo, tokens: tokens, bcryptCost: cost}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || len(input.Password) < minPasswordLength {
		return nil, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}

	return s.session(user)
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.session(*user)
}

// Authenticate resolves a bearer token to an active user id.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", err
	}
	user, err := s.repo.GetByID(ctx, claims.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", ErrInvalidToken
	}
	return user.ID, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrUserNotFound
	}
	return s.repo.GetByID(ctx, userID)
}

// EnsureUser records a user that was authenticated outside of Login, such as
// the configured development user.
func (s *Service) EnsureUser(ctx context.Context, userID, email, name string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return ErrInvalidInput
	}
	return s.repo.EnsureUser(ctx, &User{
		ID:       userID,
		Name:     strings.TrimSpace(name),
		Email:    normalizeEmail(email),
		IsActive: true,
	})
}

func (s *Service) session(user User) (*Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

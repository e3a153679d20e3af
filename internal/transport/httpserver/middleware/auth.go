package middleware

import (
	"context"
	"net/http"
	"strings"

	"shared-finance-go/internal/config"
	"shared-finance-go/internal/domain/apperr"
	usersdomain "shared-finance-go/internal/domain/users"
	"shared-finance-go/pkg/logger"
)

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// UserEnsurer records the mock user when authentication is skipped.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, userID, email, name string) error
}

type BearerAuth struct {
	tokens   Authenticator
	users    UserEnsurer
	skipAuth bool
	mockUser User
	log      logger.Logger
}

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
	accountKey
)

type User struct {
	ID    string
	Email string
	Name  string
}

func NewBearerAuth(cfg config.AuthConfig, tokens Authenticator, users UserEnsurer, log logger.Logger) *BearerAuth {
	return &BearerAuth{
		tokens:   tokens,
		users:    users,
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			ID:    strings.TrimSpace(cfg.MockUserID),
			Email: strings.TrimSpace(cfg.MockUserEmail),
			Name:  strings.TrimSpace(cfg.MockUserName),
		},
		log: log,
	}
}

func (a *BearerAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			user := a.mockUser
			if user.ID == "" {
				writeError(w, http.StatusInternalServerError, "internal", "auth_not_configured", "auth mock user id not configured")
				return
			}
			if a.users != nil {
				if err := a.users.EnsureUser(r.Context(), user.ID, user.Email, user.Name); err != nil {
					a.log.InternalError("auth.mock: ensure user failed", err, "user_id", user.ID)
				}
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		userID, err := a.tokens.Authenticate(r.Context(), token)
		if err != nil {
			if apperr.IsInternal(err) {
				a.log.InternalError("auth.authenticate: lookup failed", err)
				writeAppError(w, err)
				return
			}
			a.log.BusinessError("auth.authenticate: rejected", err, "path", r.URL.Path)
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), User{ID: userID})))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeAppError(w, usersdomain.ErrInvalidToken)
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

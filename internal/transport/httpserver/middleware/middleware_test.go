package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shared-finance-go/internal/config"
	accountsdomain "shared-finance-go/internal/domain/accounts"
	usersdomain "shared-finance-go/internal/domain/users"
	"shared-finance-go/pkg/logger"
)

type fakeAuthenticator struct {
	tokens map[string]string
	err    error
}

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	userID, ok := f.tokens[token]
	if !ok {
		return "", usersdomain.ErrInvalidToken
	}
	return userID, nil
}

type recordingEnsurer struct {
	ensured []string
}

func (r *recordingEnsurer) EnsureUser(_ context.Context, userID, _, _ string) error {
	r.ensured = append(r.ensured, userID)
	return nil
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	_, _ = w.Write([]byte(userID))
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Kind string `json:"kind"`
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestBearerAuthAcceptsValidToken(t *testing.T) {
	auth := NewBearerAuth(config.AuthConfig{}, fakeAuthenticator{tokens: map[string]string{"good": "user-1"}}, nil, logger.Nop())
	handler := auth.Middleware(http.HandlerFunc(echoUser))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestBearerAuthRejects(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "unknown token", header: "Bearer nope"},
	}
	auth := NewBearerAuth(config.AuthConfig{}, fakeAuthenticator{tokens: map[string]string{}}, nil, logger.Nop())
	handler := auth.Middleware(http.HandlerFunc(echoUser))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "invalid_token", decodeErrorCode(t, rec))
		})
	}
}

func TestBearerAuthHidesLookupFailures(t *testing.T) {
	auth := NewBearerAuth(config.AuthConfig{}, fakeAuthenticator{err: errors.New("db down")}, nil, logger.Nop())
	handler := auth.Middleware(http.HandlerFunc(echoUser))

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("Authorization", "Bearer any")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeErrorCode(t, rec))
}

func TestBearerAuthSkipModeUsesMockUser(t *testing.T) {
	ensurer := &recordingEnsurer{}
	cfg := config.AuthConfig{SkipAuth: true, MockUserID: "11111111-1111-1111-1111-111111111111", MockUserEmail: "dev@local"}
	auth := NewBearerAuth(cfg, fakeAuthenticator{}, ensurer, logger.Nop())
	handler := auth.Middleware(http.HandlerFunc(echoUser))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/accounts", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cfg.MockUserID, rec.Body.String())
	assert.Equal(t, []string{cfg.MockUserID}, ensurer.ensured)
}

type fakeAuthorizer struct {
	members map[string]string
}

func (f fakeAuthorizer) Authorize(_ context.Context, accountID, userID string) (*accountsdomain.Account, error) {
	if f.members[accountID] == "" {
		return nil, accountsdomain.ErrAccountNotFound
	}
	if f.members[accountID] != userID {
		return nil, accountsdomain.ErrNotMember
	}
	return &accountsdomain.Account{ID: accountID, AdminUserID: userID}, nil
}

func TestAccountScope(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/accounts/{account_id}", func(r chi.Router) {
		r.Use(AccountScope(fakeAuthorizer{members: map[string]string{"acc-1": "user-1"}}, logger.Nop()))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			account, ok := AccountFromContext(r.Context())
			require.True(t, ok)
			_, _ = w.Write([]byte(account.ID))
		})
	})

	cases := []struct {
		name    string
		user    string
		account string
		status  int
	}{
		{name: "member", user: "user-1", account: "acc-1", status: http.StatusOK},
		{name: "not member", user: "user-2", account: "acc-1", status: http.StatusForbidden},
		{name: "missing account", user: "user-1", account: "acc-9", status: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/accounts/"+tc.account+"/", nil)
			req = req.WithContext(WithUser(req.Context(), User{ID: tc.user}))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	handler := NewCORS([]string{"http://localhost:5173/", " "})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	preflight := httptest.NewRequest(http.MethodOptions, "/api/accounts", nil)
	preflight.Header.Set("Origin", "http://localhost:5173")
	preflight.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, preflight)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	foreign := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	foreign.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, foreign)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	wildcard := NewCORS([]string{"*"})(http.NotFoundHandler())
	rec = httptest.NewRecorder()
	wildcard.ServeHTTP(rec, foreign)
	assert.Equal(t, "http://evil.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	accountsdomain "shared-finance-go/internal/domain/accounts"
	"shared-finance-go/pkg/logger"
)

// AccountParam is the route parameter that scopes a request to an account.
const AccountParam = "account_id"

type AccountAuthorizer interface {
	Authorize(ctx context.Context, accountID, userID string) (*accountsdomain.Account, error)
}

// AccountScope admits members of the account named in the route and stores
// the account in the request context.
func AccountScope(accounts AccountAuthorizer, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}

			accountID := chi.URLParam(r, AccountParam)
			account, err := accounts.Authorize(r.Context(), accountID, userID)
			if err != nil {
				logAppError(log, "accounts.authorize: denied", err, "user_id", userID, "account_id", accountID)
				writeAppError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), accountKey, *account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func AccountFromContext(ctx context.Context) (accountsdomain.Account, bool) {
	account, ok := ctx.Value(accountKey).(accountsdomain.Account)
	if !ok || account.ID == "" {
		return accountsdomain.Account{}, false
	}
	return account, true
}

func WithAccount(ctx context.Context, account accountsdomain.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

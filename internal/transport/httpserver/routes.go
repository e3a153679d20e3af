package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"shared-finance-go/internal/config"
	"shared-finance-go/internal/transport/httpserver/handler"
	authmw "shared-finance-go/internal/transport/httpserver/middleware"
	"shared-finance-go/pkg/logger"
)

const defaultRequestTimeout = 30 * time.Second

// Dependencies are the collaborators the router needs besides handlers.
type Dependencies struct {
	Tokens   authmw.Authenticator
	Users    authmw.UserEnsurer
	Accounts authmw.AccountAuthorizer
}

func NewRouter(cfg config.Config, handlers *handler.Handlers, deps Dependencies, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout(cfg.HTTP)))
	r.Use(authmw.NewCORS(cfg.HTTP.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		r.Post("/auth/register", handlers.Common.Register)
		r.Post("/auth/login", handlers.Common.Login)

		auth := authmw.NewBearerAuth(cfg.Auth, deps.Tokens, deps.Users, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)

			r.Get("/accounts", handlers.Common.ListAccounts)
			r.Post("/accounts", handlers.Common.CreateAccount)
			r.Post("/accounts/join", handlers.Common.JoinAccount)

			r.Route("/accounts/{"+authmw.AccountParam+"}", func(r chi.Router) {
				r.Use(authmw.AccountScope(deps.Accounts, log))

				r.Get("/", handlers.Common.GetAccount)
				r.Delete("/", handlers.Common.DeleteAccount)
				r.Post("/leave", handlers.Common.LeaveAccount)
				r.Get("/members", handlers.Common.ListMembers)
				r.Delete("/members/{user_id}", handlers.Common.RemoveMember)

				r.Get("/categories", handlers.Expenses.ListCategories)
				r.Post("/categories", handlers.Expenses.CreateCategory)
				r.Patch("/categories/{id}", handlers.Expenses.UpdateCategory)
				r.Delete("/categories/{id}", handlers.Expenses.DeleteCategory)
				r.Post("/categories/{id}/subcategories", handlers.Expenses.CreateSubcategory)
				r.Delete("/subcategories/{id}", handlers.Expenses.DeleteSubcategory)

				r.Get("/expenses", handlers.Expenses.ListExpenses)
				r.Post("/expenses", handlers.Expenses.CreateExpense)
				r.Get("/expenses/principal-amounts", handlers.Expenses.PrincipalAmounts)
				r.Get("/expenses/statistics", handlers.Expenses.GetStatistics)
				r.Get("/expenses/{id}", handlers.Expenses.GetExpense)
				r.Patch("/expenses/{id}", handlers.Expenses.UpdateExpense)
				r.Delete("/expenses/{id}", handlers.Expenses.DeleteExpense)

				r.Get("/credit-payments", handlers.Expenses.ListCreditPayments)
				r.Post("/credit-payments/{id}/pay", handlers.Expenses.PayInstallment)
				r.Patch("/credit-payments/{id}", handlers.Expenses.UpdateCreditPayment)
				r.Delete("/credit-payments/{id}", handlers.Expenses.DeleteCreditPayment)
			})
		})
	})

	return r
}

func requestTimeout(cfg config.HTTPConfig) time.Duration {
	if cfg.RequestTimeout <= 0 {
		return defaultRequestTimeout
	}
	return cfg.RequestTimeout
}

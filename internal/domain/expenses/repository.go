package expenses

import (
	"context"

	"shared-finance-go/internal/domain/accounts"
	"shared-finance-go/internal/domain/categories"
	"shared-finance-go/internal/domain/creditpayments"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// CreditPayments returns the credit payment repository sharing this
	// repository's connection or transaction.
	CreditPayments() creditpayments.Repository
	CreateExpense(ctx context.Context, expense *Expense) error
	GetExpenseByID(ctx context.Context, expenseID string) (*Expense, error)
	GetExpenseDetails(ctx context.Context, expenseID string) (*ExpenseDetails, error)
	ListExpenses(ctx context.Context, accountID string, limit, skip int) ([]ExpenseDetails, int64, error)
	UpdateExpense(ctx context.Context, expense *Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
	// SumAmount returns 0 when no expense matches.
	SumAmount(ctx context.Context, accountID string, period Period) (float64, error)
	// SumByCategoryName returns one total per subcategory of the named category.
	SumByCategoryName(ctx context.Context, accountID, categoryName string) ([]float64, error)
}

type CategoryResolver interface {
	ResolveAccountCategory(ctx context.Context, accountID, categoryID string) (*categories.Category, error)
	ResolveSubcategory(ctx context.Context, subcategoryID string, category *categories.Category) (*categories.Subcategory, error)
}

type AccountReader interface {
	GetAccount(ctx context.Context, accountID string) (*accounts.Account, error)
}

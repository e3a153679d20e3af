package statistics

import (
	"context"

	"shared-finance-go/internal/domain/expenses"
)

type Repository interface {
	FindExpenses(ctx context.Context, condition Condition) ([]expenses.ExpenseDetails, error)
	// MonthlyTotals sums amounts by month for expenses dated at or after sinceMillis.
	MonthlyTotals(ctx context.Context, accountID string, sinceMillis int64) ([]MonthTotal, error)
}

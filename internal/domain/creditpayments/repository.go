package creditpayments

import (
	"context"

	"shared-finance-go/internal/domain/accounts"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Create(ctx context.Context, payment *CreditPayment) error
	GetByID(ctx context.Context, id string) (*CreditPayment, error)
	// IncrementInstallmentsPaid adds one paid installment in a single UPDATE.
	IncrementInstallmentsPaid(ctx context.Context, id string) error
	ListActive(ctx context.Context, accountID string, onlyPending bool) ([]CreditPayment, error)
	ListExpenses(ctx context.Context, creditPaymentIDs []string) ([]ExpenseRef, error)
	Update(ctx context.Context, payment *CreditPayment) error
	// Delete removes the credit payment and every expense linked to it.
	Delete(ctx context.Context, id string) error
}

// AccountReader resolves the account that owns a credit payment.
type AccountReader interface {
	GetAccount(ctx context.Context, accountID string) (*accounts.Account, error)
}

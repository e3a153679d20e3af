package creditpayments

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"shared-finance-go/internal/domain/accounts"
)

const maxNameLength = 30

type Service struct {
	repo     Repository
	accounts AccountReader
}

func NewService(repo Repository, accountReader AccountReader) *Service {
	return &Service{repo: repo, accounts: accountReader}
}

// WithRepository returns a copy of the ledger bound to repo, typically a
// repository scoped to an outer transaction.
func (s *Service) WithRepository(repo Repository) *Service {
	bound := *s
	bound.repo = repo
	return &bound
}

// New builds a credit payment for a purchase whose first installment is
// being recorded now.
func New(input CreateInput) CreditPayment {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = DefaultName
	}
	return CreditPayment{
		ID:               uuid.NewString(),
		Name:             name,
		Installments:     input.Installments,
		InstallmentsPaid: 1,
		IsActive:         true,
		AccountID:        input.AccountID,
		UserID:           input.UserID,
		CategoryID:       input.CategoryID,
		SubcategoryID:    input.SubcategoryID,
	}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*CreditPayment, error) {
	if input.Installments < 1 {
		return nil, ErrInvalidInstallments
	}
	if utf8.RuneCountInString(strings.TrimSpace(input.Name)) > maxNameLength {
		return nil, ErrInvalidName
	}

	payment := New(input)
	if err := s.repo.Create(ctx, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Get returns an active credit payment.
func (s *Service) Get(ctx context.Context, id string) (*CreditPayment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCreditPaymentNotFound
	}
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !payment.IsActive {
		return nil, ErrCreditPaymentNotFound
	}
	return payment, nil
}

// PayInstallment records one more paid installment. It does not stop at
// Installments; paying past the nominal count is allowed.
func (s *Service) PayInstallment(ctx context.Context, id string) (*CreditPayment, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.IncrementInstallmentsPaid(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) FindAll(ctx context.Context, accountID string, onlyPending bool) ([]CreditPaymentWithExpenses, error) {
	payments, err := s.repo.ListActive(ctx, accountID, onlyPending)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return []CreditPaymentWithExpenses{}, nil
	}

	ids := make([]string, 0, len(payments))
	for _, payment := range payments {
		ids = append(ids, payment.ID)
	}

	refs, err := s.repo.ListExpenses(ctx, ids)
	if err != nil {
		return nil, err
	}

	byPayment := make(map[string][]ExpenseRef, len(payments))
	for _, ref := range refs {
		byPayment[ref.CreditPaymentID] = append(byPayment[ref.CreditPaymentID], ref)
	}

	items := make([]CreditPaymentWithExpenses, 0, len(payments))
	for _, payment := range payments {
		expenses := byPayment[payment.ID]
		if expenses == nil {
			expenses = []ExpenseRef{}
		}
		items = append(items, CreditPaymentWithExpenses{CreditPayment: payment, Expenses: expenses})
	}
	return items, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch, actingUserID, accountID string) (*CreditPayment, error) {
	payment, err := s.authorize(ctx, id, actingUserID, accountID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if utf8.RuneCountInString(name) > maxNameLength {
			return nil, ErrInvalidName
		}
		if name == "" {
			name = DefaultName
		}
		payment.Name = name
	}
	if patch.Installments != nil {
		if *patch.Installments < 1 {
			return nil, ErrInvalidInstallments
		}
		payment.Installments = *patch.Installments
	}

	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Remove deletes the credit payment together with its installment expenses
// and returns the deleted record.
func (s *Service) Remove(ctx context.Context, id, actingUserID, accountID string) (*CreditPayment, error) {
	payment, err := s.authorize(ctx, id, actingUserID, accountID)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		return tx.Delete(ctx, payment.ID)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Service) authorize(ctx context.Context, id, actingUserID, accountID string) (*CreditPayment, error) {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.AccountID != accountID {
		return nil, ErrCreditPaymentForbidden
	}

	account, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !accounts.CanModify(actingUserID, payment.UserID, account.AdminUserID) {
		return nil, ErrCreditPaymentForbidden
	}
	return payment, nil
}

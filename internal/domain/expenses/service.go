package expenses

import (
	"context"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"shared-finance-go/internal/domain/accounts"
	"shared-finance-go/internal/domain/calendar"
	"shared-finance-go/internal/domain/categories"
	"shared-finance-go/internal/domain/creditpayments"
)

type Service struct {
	repo       Repository
	categories CategoryResolver
	accounts   AccountReader
	ledger     *creditpayments.Service
	loc        *time.Location
	now        func() time.Time
}

func NewService(repo Repository, resolver CategoryResolver, accountReader AccountReader, ledger *creditpayments.Service) *Service {
	return NewServiceWithLocation(repo, resolver, accountReader, ledger, time.UTC)
}

func NewServiceWithLocation(repo Repository, resolver CategoryResolver, accountReader AccountReader, ledger *creditpayments.Service, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:       repo,
		categories: resolver,
		accounts:   accountReader,
		ledger:     ledger,
		loc:        loc,
		now:        time.Now,
	}
}

// Create records an expense. With more than one installment it also opens a
// credit payment and links the expense to it as installment 1.
func (s *Service) Create(ctx context.Context, input CreateInput) (*ExpenseDetails, error) {
	if err := validateFields(input.Amount, input.CompleteDate, input.Description); err != nil {
		return nil, err
	}

	parts := calendar.Partition(input.CompleteDate, s.now(), s.loc)

	category, subcategory, err := s.resolveCategories(ctx, input.AccountID, input.CategoryID, input.SubcategoryID)
	if err != nil {
		return nil, err
	}

	if _, err := s.accounts.GetAccount(ctx, input.AccountID); err != nil {
		return nil, err
	}

	expense := Expense{
		ID:            uuid.NewString(),
		Amount:        input.Amount,
		Description:   input.Description,
		CompleteDate:  input.CompleteDate,
		AccountID:     input.AccountID,
		UserID:        input.UserID,
		CategoryID:    category.ID,
		SubcategoryID: subcategory.ID,
	}
	applyParts(&expense, parts)

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if input.Installments > 1 {
			payment, err := s.ledger.WithRepository(tx.CreditPayments()).Create(ctx, creditpayments.CreateInput{
				AccountID:     input.AccountID,
				UserID:        input.UserID,
				CategoryID:    category.ID,
				SubcategoryID: subcategory.ID,
				Name:          input.CreditPaymentName,
				Installments:  input.Installments,
			})
			if err != nil {
				return err
			}
			expense.CreditPaymentID = &payment.ID
		}

		return tx.CreateExpense(ctx, &expense)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetExpenseDetails(ctx, expense.ID)
}

func (s *Service) FindAll(ctx context.Context, accountID string, page Pagination) (*Page, error) {
	if page.Limit <= 0 || page.Skip < 0 {
		return nil, ErrInvalidPagination
	}

	items, total, err := s.repo.ListExpenses(ctx, accountID, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []ExpenseDetails{}
	}

	return &Page{
		TotalExpenses: total,
		Limit:         page.Limit,
		Skip:          page.Skip,
		Expenses:      items,
	}, nil
}

// PrincipalAmounts returns this month's, this week's and today's totals plus
// the total of the fixed costs category.
func (s *Service) PrincipalAmounts(ctx context.Context, accountID string) (PrincipalAmounts, error) {
	now := s.now().In(s.loc)
	year := now.Year()
	month := int(now.Month())
	week := calendar.CurrentWeek(now, s.loc)

	var result PrincipalAmounts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.repo.SumAmount(gctx, accountID, Period{Month: month, Year: year})
		result.TotalAmountOnMonth = total
		return err
	})
	g.Go(func() error {
		total, err := s.repo.SumAmount(gctx, accountID, Period{Week: week, Year: year})
		result.TotalAmountOnWeek = total
		return err
	})
	g.Go(func() error {
		total, err := s.repo.SumAmount(gctx, accountID, Period{NumDate: now.Day(), Month: month, Year: year})
		result.TotalAmountOnDay = total
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.SumByCategoryName(gctx, accountID, categories.FixedCostsName)
		if err != nil {
			return err
		}
		sum := decimal.Zero
		for _, row := range rows {
			sum = sum.Add(decimal.NewFromFloat(row))
		}
		result.TotalAmountFixedCostsMonthly = sum.InexactFloat64()
		return nil
	})

	if err := g.Wait(); err != nil {
		return PrincipalAmounts{}, err
	}
	return result, nil
}

// FindOne returns the expense; an expense of another account is forbidden
// rather than missing.
func (s *Service) FindOne(ctx context.Context, expenseID, accountID string) (*ExpenseDetails, error) {
	if _, err := uuid.Parse(expenseID); err != nil {
		return nil, ErrExpenseNotFound
	}

	details, err := s.repo.GetExpenseDetails(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if details.AccountID != accountID {
		return nil, ErrExpenseForbidden
	}
	return details, nil
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (*ExpenseDetails, error) {
	existing, err := s.FindOne(ctx, input.ID, input.AccountID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, &existing.Expense, input.UserID); err != nil {
		return nil, err
	}

	expense := existing.Expense
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.CompleteDate != nil {
		expense.CompleteDate = *input.CompleteDate
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if err := validateFields(expense.Amount, expense.CompleteDate, expense.Description); err != nil {
		return nil, err
	}

	result := *existing
	if input.CategoryID != nil || input.SubcategoryID != nil {
		categoryID := expense.CategoryID
		if input.CategoryID != nil {
			categoryID = *input.CategoryID
		}
		subcategoryID := expense.SubcategoryID
		if input.SubcategoryID != nil {
			subcategoryID = *input.SubcategoryID
		}

		category, subcategory, err := s.resolveCategories(ctx, input.AccountID, categoryID, subcategoryID)
		if err != nil {
			return nil, err
		}
		expense.CategoryID = category.ID
		expense.SubcategoryID = subcategory.ID
		result.CategoryName = category.Name
		result.SubcategoryName = subcategory.Name
	}

	applyParts(&expense, calendar.Partition(expense.CompleteDate, s.now(), s.loc))

	if err := s.repo.UpdateExpense(ctx, &expense); err != nil {
		return nil, err
	}

	result.Expense = expense
	return &result, nil
}

func (s *Service) Remove(ctx context.Context, expenseID, accountID, userID string) (*RemoveResult, error) {
	existing, err := s.FindOne(ctx, expenseID, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, &existing.Expense, userID); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteExpense(ctx, existing.ID); err != nil {
		return nil, err
	}

	return &RemoveResult{
		StatusCode: http.StatusOK,
		Message:    "expense deleted",
		Expense:    existing.Expense,
	}, nil
}

// PayInstallment records the next installment of a credit payment. Category,
// subcategory and author are taken from the credit payment as stored.
func (s *Service) PayInstallment(ctx context.Context, input PayInstallmentInput) (*ExpenseDetails, error) {
	if err := validateFields(input.Amount, input.CompleteDate, input.Description); err != nil {
		return nil, err
	}

	payment, err := s.ledger.Get(ctx, input.CreditPaymentID)
	if err != nil {
		return nil, err
	}
	if payment.AccountID != input.AccountID {
		return nil, creditpayments.ErrCreditPaymentForbidden
	}

	expense := Expense{
		ID:              uuid.NewString(),
		Amount:          input.Amount,
		Description:     input.Description,
		CompleteDate:    input.CompleteDate,
		CreditPaymentID: &payment.ID,
		AccountID:       payment.AccountID,
		UserID:          payment.UserID,
		CategoryID:      payment.CategoryID,
		SubcategoryID:   payment.SubcategoryID,
	}
	applyParts(&expense, calendar.Partition(input.CompleteDate, s.now(), s.loc))

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := s.ledger.WithRepository(tx.CreditPayments()).PayInstallment(ctx, payment.ID); err != nil {
			return err
		}
		return tx.CreateExpense(ctx, &expense)
	})
	if err != nil {
		return nil, err
	}

	// Re-read so the response carries the joined names and the paid count.
	return s.repo.GetExpenseDetails(ctx, expense.ID)
}

func (s *Service) resolveCategories(ctx context.Context, accountID, categoryID, subcategoryID string) (*categories.Category, *categories.Subcategory, error) {
	category, err := s.categories.ResolveAccountCategory(ctx, accountID, categoryID)
	if err != nil {
		return nil, nil, err
	}
	subcategory, err := s.categories.ResolveSubcategory(ctx, subcategoryID, category)
	if err != nil {
		return nil, nil, err
	}
	return category, subcategory, nil
}

func (s *Service) authorize(ctx context.Context, expense *Expense, userID string) error {
	account, err := s.accounts.GetAccount(ctx, expense.AccountID)
	if err != nil {
		return err
	}
	if !accounts.CanModify(userID, expense.UserID, account.AdminUserID) {
		return ErrExpenseForbidden
	}
	return nil
}

func applyParts(expense *Expense, parts calendar.Parts) {
	expense.NumDate = parts.NumDate
	expense.Month = parts.Month
	expense.Year = parts.Year
	expense.Week = parts.Week
	expense.DayName = parts.DayName
}

func validateFields(amount float64, completeDate int64, description string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if completeDate <= 0 {
		return ErrInvalidCompleteDate
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return ErrInvalidDescription
	}
	return nil
}

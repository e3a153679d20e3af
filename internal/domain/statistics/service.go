package statistics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shared-finance-go/internal/domain/expenses"
)

const lastYearMillis = int64(365 * 24 * 60 * 60 * 1000)

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithLocation(repo, time.UTC)
}

func NewServiceWithLocation(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

func (s *Service) Statistics(ctx context.Context, accountID string, filter Filter) (*Result, error) {
	if len(filter.Subcategories) > 0 && len(filter.Categories) == 0 {
		return nil, ErrSubcategoriesWithoutCategories
	}
	if err := validateIDs(filter.Users, filter.Categories, filter.Subcategories); err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	if len(filter.Months) == 0 {
		filter.Months = []int{int(now.Month())}
	}
	if len(filter.Years) == 0 {
		filter.Years = []int{now.Year()}
	}

	rows, err := s.repo.FindExpenses(ctx, BuildCondition(accountID, filter))
	if err != nil {
		return nil, err
	}

	monthly, err := s.repo.MonthlyTotals(ctx, accountID, now.UnixMilli()-lastYearMillis)
	if err != nil {
		return nil, err
	}

	result := reduce(rows, GroupingFor(filter))
	if monthly == nil {
		monthly = []MonthTotal{}
	}
	result.ExpensesForMonthInLastYear = monthly
	return result, nil
}

// reduce walks rows once and fills exactly one of the two name maps.
func reduce(rows []expenses.ExpenseDetails, groupBy GroupBy) *Result {
	total := decimal.Zero
	sums := make(map[string]decimal.Decimal)

	for _, row := range rows {
		amount := decimal.NewFromFloat(row.Amount)
		total = total.Add(amount)

		name := row.CategoryName
		if groupBy == GroupBySubcategories {
			name = row.SubcategoryName
		}
		sums[name] = sums[name].Add(amount)
	}

	named := make(map[string]float64, len(sums))
	for name, sum := range sums {
		named[name] = sum.InexactFloat64()
	}

	result := &Result{
		Expenses:                     rows,
		TotalAmount:                  total.InexactFloat64(),
		TotalAmountsForCategories:    map[string]float64{},
		TotalAmountsForSubcategories: map[string]float64{},
	}
	if result.Expenses == nil {
		result.Expenses = []expenses.ExpenseDetails{}
	}
	if groupBy == GroupBySubcategories {
		result.TotalAmountsForSubcategories = named
	} else {
		result.TotalAmountsForCategories = named
	}
	return result
}

func validateIDs(groups ...[]string) error {
	for _, ids := range groups {
		for _, id := range ids {
			if _, err := uuid.Parse(id); err != nil {
				return ErrInvalidFilter
			}
		}
	}
	return nil
}

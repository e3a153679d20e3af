package statistics

import "shared-finance-go/internal/domain/expenses"

// Filter narrows the expenses of an account. Empty slices and nil bounds are
// not applied, except Months and Years which default to the current period.
type Filter struct {
	MinAmount     *float64
	MaxAmount     *float64
	NumDates      []int
	Months        []int
	Years         []int
	DayNames      []string
	Users         []string
	Categories    []string
	Subcategories []string
}

type GroupBy string

const (
	GroupByCategories    GroupBy = "categories"
	GroupBySubcategories GroupBy = "subcategories"
)

// Condition is a parameterized WHERE clause over the expenses table.
type Condition struct {
	SQL  string
	Args []any
}

type MonthTotal struct {
	Month int
	Total float64
}

type Result struct {
	Expenses                     []expenses.ExpenseDetails
	TotalAmount                  float64
	TotalAmountsForCategories    map[string]float64
	TotalAmountsForSubcategories map[string]float64
	ExpensesForMonthInLastYear   []MonthTotal
}

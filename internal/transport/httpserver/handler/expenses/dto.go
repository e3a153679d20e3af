package expenses

import (
	"time"

	categoriesdomain "shared-finance-go/internal/domain/categories"
	creditpaymentsdomain "shared-finance-go/internal/domain/creditpayments"
	expensesdomain "shared-finance-go/internal/domain/expenses"
	statisticsdomain "shared-finance-go/internal/domain/statistics"
)

type refResponse struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type creditPaymentResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Installments     int       `json:"installments"`
	InstallmentsPaid int       `json:"installments_paid"`
	IsActive         bool      `json:"is_active"`
	UserID           string    `json:"user_id"`
	CategoryID       string    `json:"category_id"`
	SubcategoryID    string    `json:"subcategory_id"`
	CreatedAt        time.Time `json:"created_at"`
}

type expenseResponse struct {
	ID              string                 `json:"id"`
	Amount          float64                `json:"amount"`
	Description     string                 `json:"description"`
	CompleteDate    int64                  `json:"complete_date"`
	NumDate         int                    `json:"num_date"`
	Month           int                    `json:"month"`
	Year            int                    `json:"year"`
	Week            int                    `json:"week"`
	DayName         string                 `json:"day_name"`
	User            refResponse            `json:"user"`
	Category        refResponse            `json:"category"`
	Subcategory     refResponse            `json:"subcategory"`
	CreditPaymentID *string                `json:"credit_payment_id"`
	CreditPayment   *creditPaymentResponse `json:"credit_payment"`
	CreatedAt       time.Time              `json:"created_at"`
}

type expenseEnvelope struct {
	Expense expenseResponse `json:"expense"`
}

type pageResponse struct {
	TotalExpenses int64             `json:"totalExpenses"`
	Limit         int               `json:"limit"`
	Skip          int               `json:"skip"`
	Expenses      []expenseResponse `json:"expenses"`
}

type principalAmountsResponse struct {
	TotalAmountOnMonth           float64 `json:"totalAmountOnMonth"`
	TotalAmountOnWeek            float64 `json:"totalAmountOnWeek"`
	TotalAmountOnDay             float64 `json:"totalAmountOnDay"`
	TotalAmountFixedCostsMonthly float64 `json:"totalAmountFixedCostsMonthly"`
}

type removeExpenseResponse struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Expense    expenseResponse `json:"expense"`
}

type installmentResponse struct {
	ID           string      `json:"id"`
	Amount       float64     `json:"amount"`
	Description  string      `json:"description"`
	CompleteDate int64       `json:"complete_date"`
	NumDate      int         `json:"num_date"`
	Month        int         `json:"month"`
	Year         int         `json:"year"`
	Week         int         `json:"week"`
	DayName      string      `json:"day_name"`
	User         refResponse `json:"user"`
	Category     refResponse `json:"category"`
	Subcategory  refResponse `json:"subcategory"`
}

type creditPaymentWithExpensesResponse struct {
	creditPaymentResponse
	Expenses []installmentResponse `json:"expenses"`
}

type monthTotalResponse struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

type statisticsResponse struct {
	Expenses                     []expenseResponse    `json:"expenses"`
	TotalAmount                  float64              `json:"totalAmount"`
	TotalAmountsForCategories    map[string]float64   `json:"totalAmountsForCategories"`
	TotalAmountsForSubcategories map[string]float64   `json:"totalAmountsForSubcategories"`
	ExpensesForMonthInLastYear   []monthTotalResponse `json:"expensesForMonthInLastYear"`
}

type subcategoryResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

type categoryResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Subcategories []subcategoryResponse `json:"subcategories"`
}

func toExpenseResponse(expense expensesdomain.ExpenseDetails) expenseResponse {
	response := expenseResponse{
		ID:           expense.ID,
		Amount:       expense.Amount,
		Description:  expense.Description,
		CompleteDate: expense.CompleteDate,
		NumDate:      expense.NumDate,
		Month:        expense.Month,
		Year:         expense.Year,
		Week:         expense.Week,
		DayName:      expense.DayName,
		User:         refResponse{ID: expense.UserID, Name: expense.UserName},
		Category:     refResponse{ID: expense.CategoryID, Name: expense.CategoryName},
		Subcategory:  refResponse{ID: expense.SubcategoryID, Name: expense.SubcategoryName},
		CreatedAt:    expense.CreatedAt,
	}
	if expense.CreditPaymentID != nil {
		id := *expense.CreditPaymentID
		response.CreditPaymentID = &id
	}
	if expense.CreditPayment != nil {
		payment := toCreditPaymentResponse(*expense.CreditPayment)
		response.CreditPayment = &payment
		response.CreditPaymentID = &payment.ID
	}
	return response
}

func toExpenseResponses(items []expensesdomain.ExpenseDetails) []expenseResponse {
	response := make([]expenseResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toExpenseResponse(item))
	}
	return response
}

func toCreditPaymentResponse(payment creditpaymentsdomain.CreditPayment) creditPaymentResponse {
	return creditPaymentResponse{
		ID:               payment.ID,
		Name:             payment.Name,
		Installments:     payment.Installments,
		InstallmentsPaid: payment.InstallmentsPaid,
		IsActive:         payment.IsActive,
		UserID:           payment.UserID,
		CategoryID:       payment.CategoryID,
		SubcategoryID:    payment.SubcategoryID,
		CreatedAt:        payment.CreatedAt,
	}
}

func toCreditPaymentWithExpensesResponse(item creditpaymentsdomain.CreditPaymentWithExpenses) creditPaymentWithExpensesResponse {
	expenses := make([]installmentResponse, 0, len(item.Expenses))
	for _, ref := range item.Expenses {
		expenses = append(expenses, installmentResponse{
			ID:           ref.ID,
			Amount:       ref.Amount,
			Description:  ref.Description,
			CompleteDate: ref.CompleteDate,
			NumDate:      ref.NumDate,
			Month:        ref.Month,
			Year:         ref.Year,
			Week:         ref.Week,
			DayName:      ref.DayName,
			User:         refResponse{ID: ref.UserID, Name: ref.UserName},
			Category:     refResponse{ID: ref.CategoryID, Name: ref.CategoryName},
			Subcategory:  refResponse{ID: ref.SubcategoryID, Name: ref.SubcategoryName},
		})
	}
	return creditPaymentWithExpensesResponse{
		creditPaymentResponse: toCreditPaymentResponse(item.CreditPayment),
		Expenses:              expenses,
	}
}

func toStatisticsResponse(result *statisticsdomain.Result) statisticsResponse {
	months := make([]monthTotalResponse, 0, len(result.ExpensesForMonthInLastYear))
	for _, month := range result.ExpensesForMonthInLastYear {
		months = append(months, monthTotalResponse{Month: month.Month, Total: month.Total})
	}
	return statisticsResponse{
		Expenses:                     toExpenseResponses(result.Expenses),
		TotalAmount:                  result.TotalAmount,
		TotalAmountsForCategories:    nonNilMap(result.TotalAmountsForCategories),
		TotalAmountsForSubcategories: nonNilMap(result.TotalAmountsForSubcategories),
		ExpensesForMonthInLastYear:   months,
	}
}

func toCategoryResponse(category categoriesdomain.CategoryWithSubcategories) categoryResponse {
	subcategories := make([]subcategoryResponse, 0, len(category.Subcategories))
	for _, sub := range category.Subcategories {
		subcategories = append(subcategories, toSubcategoryResponse(sub))
	}
	return categoryResponse{ID: category.ID, Name: category.Name, Subcategories: subcategories}
}

func toSubcategoryResponse(sub categoriesdomain.Subcategory) subcategoryResponse {
	return subcategoryResponse{ID: sub.ID, CategoryID: sub.CategoryID, Name: sub.Name}
}

func nonNilMap(values map[string]float64) map[string]float64 {
	if values == nil {
		return map[string]float64{}
	}
	return values
}

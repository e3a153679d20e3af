package expenses

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	expensesdomain "shared-finance-go/internal/domain/expenses"
	commonhandler "shared-finance-go/internal/transport/httpserver/handler/common"
)

type createExpenseRequest struct {
	Amount            float64 `json:"amount" validate:"gt=0"`
	CompleteDate      int64   `json:"complete_date" validate:"gt=0"`
	Description       string  `json:"description" validate:"max=50"`
	Installments      *int    `json:"installments" validate:"omitempty,min=1"`
	NameCreditPayment string  `json:"name_credit_payment" validate:"max=30"`
	CategoryID        string  `json:"categoryId" validate:"required,uuid"`
	SubcategoryID     string  `json:"subcategoryId" validate:"required,uuid"`
}

type updateExpenseRequest struct {
	Amount        *float64 `json:"amount" validate:"omitempty,gt=0"`
	CompleteDate  *int64   `json:"complete_date" validate:"omitempty,gt=0"`
	Description   *string  `json:"description" validate:"omitempty,max=50"`
	CategoryID    *string  `json:"categoryId" validate:"omitempty,uuid"`
	SubcategoryID *string  `json:"subcategoryId" validate:"omitempty,uuid"`
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "expenses.create")
	if !ok {
		return
	}

	var req createExpenseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, "expenses.create: invalid request", err, "user_id", userID, "account_id", accountID)
		return
	}

	installments := 1
	if req.Installments != nil {
		installments = *req.Installments
	}

	created, err := h.Expenses.Create(r.Context(), expensesdomain.CreateInput{
		AccountID:         accountID,
		UserID:            userID,
		Amount:            req.Amount,
		CompleteDate:      req.CompleteDate,
		Description:       req.Description,
		Installments:      installments,
		CreditPaymentName: req.NameCreditPayment,
		CategoryID:        req.CategoryID,
		SubcategoryID:     req.SubcategoryID,
	})
	if err != nil {
		h.writeError(w, "expenses.create: create failed", err, "user_id", userID, "account_id", accountID)
		return
	}

	writeJSON(w, http.StatusCreated, expenseEnvelope{Expense: toExpenseResponse(*created)})
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "expenses.list")
	if !ok {
		return
	}

	query := r.URL.Query()
	limit, err := commonhandler.ParseIntParam(query.Get("limit"), expensesdomain.DefaultLimit)
	if err != nil {
		h.writeError(w, "expenses.list: invalid limit", errInvalidQuery, "user_id", userID, "limit", query.Get("limit"))
		return
	}
	skip, err := commonhandler.ParseIntParam(query.Get("skip"), 0)
	if err != nil {
		h.writeError(w, "expenses.list: invalid skip", errInvalidQuery, "user_id", userID, "skip", query.Get("skip"))
		return
	}

	page, err := h.Expenses.FindAll(r.Context(), accountID, expensesdomain.Pagination{Limit: limit, Skip: skip})
	if err != nil {
		h.writeError(w, "expenses.list: list failed", err, "user_id", userID, "account_id", accountID)
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{
		TotalExpenses: page.TotalExpenses,
		Limit:         page.Limit,
		Skip:          page.Skip,
		Expenses:      toExpenseResponses(page.Expenses),
	})
}

func (h *Handlers) PrincipalAmounts(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "expenses.principal_amounts")
	if !ok {
		return
	}

	amounts, err := h.Expenses.PrincipalAmounts(r.Context(), accountID)
	if err != nil {
		h.writeError(w, "expenses.principal_amounts: sum failed", err, "user_id", userID, "account_id", accountID)
		return
	}

	writeJSON(w, http.StatusOK, principalAmountsResponse{
		TotalAmountOnMonth:           amounts.TotalAmountOnMonth,
		TotalAmountOnWeek:            amounts.TotalAmountOnWeek,
		TotalAmountOnDay:             amounts.TotalAmountOnDay,
		TotalAmountFixedCostsMonthly: amounts.TotalAmountFixedCostsMonthly,
	})
}

func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "expenses.get")
	if !ok {
		return
	}

	expenseID := chi.URLParam(r, "id")
	expense, err := h.Expenses.FindOne(r.Context(), expenseID, accountID)
	if err != nil {
		h.writeError(w, "expenses.get: find failed", err, "user_id", userID, "account_id", accountID, "expense_id", expenseID)
		return
	}

	writeJSON(w, http.StatusOK, expenseEnvelope{Expense: toExpenseResponse(*expense)})
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "expenses.update")
	if !ok {
		return
	}

	var req updateExpenseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, "expenses.update: invalid request", err, "user_id", userID, "account_id", accountID)
		return
	}

	expenseID := chi.URLParam(r, "id")
	updated, err := h.Expenses.Update(r.Context(), expensesdomain.UpdateInput{
		ID:            expenseID,
		AccountID:     accountID,
		UserID:        userID,
		Amount:        req.Amount,
		CompleteDate:  req.CompleteDate,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
	})
	if err != nil {
		h.writeError(w, "expenses.update: update failed", err, "user_id", userID, "account_id", accountID, "expense_id", expenseID)
		return
	}

	writeJSON(w, http.StatusOK, expenseEnvelope{Expense: toExpenseResponse(*updated)})
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "expenses.delete")
	if !ok {
		return
	}

	expenseID := chi.URLParam(r, "id")
	result, err := h.Expenses.Remove(r.Context(), expenseID, accountID, userID)
	if err != nil {
		h.writeError(w, "expenses.delete: delete failed", err, "user_id", userID, "account_id", accountID, "expense_id", expenseID)
		return
	}

	writeJSON(w, http.StatusOK, removeExpenseResponse{
		StatusCode: result.StatusCode,
		Message:    result.Message,
		Expense:    toExpenseResponse(expensesdomain.ExpenseDetails{Expense: result.Expense}),
	})
}

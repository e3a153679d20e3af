package expenses

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	creditpaymentsdomain "shared-finance-go/internal/domain/creditpayments"
	expensesdomain "shared-finance-go/internal/domain/expenses"
	commonhandler "shared-finance-go/internal/transport/httpserver/handler/common"
)

type payInstallmentRequest struct {
	Amount       float64 `json:"amount" validate:"gt=0"`
	CompleteDate int64   `json:"complete_date" validate:"gt=0"`
	Description  string  `json:"description" validate:"max=50"`
}

type updateCreditPaymentRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=30"`
	Installments *int    `json:"installments" validate:"omitempty,min=1"`
}

func (h *Handlers) PayInstallment(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "credit_payments.pay")
	if !ok {
		return
	}

	var req payInstallmentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, "credit_payments.pay: invalid request", err, "user_id", userID, "account_id", accountID)
		return
	}

	paymentID := chi.URLParam(r, "id")
	expense, err := h.Expenses.PayInstallment(r.Context(), expensesdomain.PayInstallmentInput{
		CreditPaymentID: paymentID,
		AccountID:       accountID,
		Amount:          req.Amount,
		CompleteDate:    req.CompleteDate,
		Description:     req.Description,
	})
	if err != nil {
		h.writeError(w, "credit_payments.pay: pay failed", err, "user_id", userID, "account_id", accountID, "credit_payment_id", paymentID)
		return
	}

	writeJSON(w, http.StatusCreated, expenseEnvelope{Expense: toExpenseResponse(*expense)})
}

func (h *Handlers) ListCreditPayments(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "credit_payments.list")
	if !ok {
		return
	}

	pending, err := commonhandler.ParseBoolParam(r.URL.Query().Get("pending"))
	if err != nil {
		h.writeError(w, "credit_payments.list: invalid pending", errInvalidQuery, "user_id", userID, "pending", r.URL.Query().Get("pending"))
		return
	}

	items, err := h.CreditPayments.FindAll(r.Context(), accountID, pending)
	if err != nil {
		h.writeError(w, "credit_payments.list: list failed", err, "user_id", userID, "account_id", accountID)
		return
	}

	response := make([]creditPaymentWithExpensesResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toCreditPaymentWithExpensesResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) UpdateCreditPayment(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "credit_payments.update")
	if !ok {
		return
	}

	var req updateCreditPaymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, "credit_payments.update: invalid request", err, "user_id", userID, "account_id", accountID)
		return
	}

	paymentID := chi.URLParam(r, "id")
	updated, err := h.CreditPayments.Update(r.Context(), paymentID, creditpaymentsdomain.Patch{
		Name:         req.Name,
		Installments: req.Installments,
	}, userID, accountID)
	if err != nil {
		h.writeError(w, "credit_payments.update: update failed", err, "user_id", userID, "account_id", accountID, "credit_payment_id", paymentID)
		return
	}

	writeJSON(w, http.StatusOK, toCreditPaymentResponse(*updated))
}

func (h *Handlers) DeleteCreditPayment(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "credit_payments.delete")
	if !ok {
		return
	}

	paymentID := chi.URLParam(r, "id")
	deleted, err := h.CreditPayments.Remove(r.Context(), paymentID, userID, accountID)
	if err != nil {
		h.writeError(w, "credit_payments.delete: delete failed", err, "user_id", userID, "account_id", accountID, "credit_payment_id", paymentID)
		return
	}

	writeJSON(w, http.StatusOK, toCreditPaymentResponse(*deleted))
}

package expenses

import "shared-finance-go/internal/domain/apperr"

var (
	ErrExpenseNotFound     = apperr.New(apperr.KindNotFound, "expense_not_found", "expense not found")
	ErrExpenseForbidden    = apperr.New(apperr.KindForbidden, "expense_forbidden", "not allowed to access this expense")
	ErrInvalidAmount       = apperr.New(apperr.KindBadRequest, "invalid_amount", "amount must be positive")
	ErrInvalidCompleteDate = apperr.New(apperr.KindBadRequest, "invalid_complete_date", "complete_date must be positive")
	ErrInvalidDescription  = apperr.New(apperr.KindBadRequest, "invalid_description", "description must be at most 50 characters")
	ErrInvalidPagination   = apperr.New(apperr.KindBadRequest, "invalid_pagination", "limit must be positive and skip non-negative")
)

package creditpayments

import "shared-finance-go/internal/domain/apperr"

var (
	ErrCreditPaymentNotFound  = apperr.New(apperr.KindNotFound, "credit_payment_not_found", "credit payment not found")
	ErrCreditPaymentForbidden = apperr.New(apperr.KindForbidden, "credit_payment_forbidden", "not allowed to modify this credit payment")
	ErrInvalidInstallments    = apperr.New(apperr.KindBadRequest, "invalid_installments", "installments must be at least 1")
	ErrInvalidName            = apperr.New(apperr.KindBadRequest, "invalid_name", "name must be at most 30 characters")
)

package users

import "shared-finance-go/internal/domain/apperr"

var (
	ErrUserNotFound       = apperr.New(apperr.KindNotFound, "user_not_found", "user not found")
	ErrEmailTaken         = apperr.New(apperr.KindBadRequest, "email_taken", "email already registered")
	ErrInvalidInput       = apperr.New(apperr.KindBadRequest, "invalid_input", "name, email and password are required")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "invalid_credentials", "invalid email or password")
	ErrInvalidToken       = apperr.New(apperr.KindUnauthorized, "invalid_token", "invalid token")
)

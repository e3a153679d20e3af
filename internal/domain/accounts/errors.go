package accounts

import "shared-finance-go/internal/domain/apperr"

var (
	ErrAccountNotFound        = apperr.New(apperr.KindNotFound, "account_not_found", "account not found")
	ErrAccessKeyNotFound      = apperr.New(apperr.KindNotFound, "access_key_not_found", "access key not found")
	ErrMemberNotFound         = apperr.New(apperr.KindNotFound, "member_not_found", "member not found")
	ErrNotMember              = apperr.New(apperr.KindForbidden, "not_account_member", "user is not a member of this account")
	ErrNotAdmin               = apperr.New(apperr.KindForbidden, "not_account_admin", "only the account admin can do this")
	ErrAccountFull            = apperr.New(apperr.KindForbidden, "account_full", "account reached its maximum number of users")
	ErrAlreadyMember          = apperr.New(apperr.KindBadRequest, "already_member", "user already belongs to this account")
	ErrCannotRemoveAdmin      = apperr.New(apperr.KindBadRequest, "cannot_remove_admin", "admin must leave the account instead")
	ErrInvalidName            = apperr.New(apperr.KindBadRequest, "invalid_name", "name is required")
	ErrAccessKeyGeneration    = apperr.New(apperr.KindInternal, "access_key_generation_failed", "access key generation failed")
)

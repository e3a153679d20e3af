package categories

import "shared-finance-go/internal/domain/apperr"

var (
	ErrCategoryNotFound    = apperr.New(apperr.KindNotFound, "category_not_found", "category not found")
	ErrSubcategoryNotFound = apperr.New(apperr.KindNotFound, "subcategory_not_found", "subcategory not found")
	ErrCategoryForbidden   = apperr.New(apperr.KindForbidden, "category_forbidden", "category belongs to another account")
	ErrInvalidRelation     = apperr.New(apperr.KindBadRequest, "invalid_relation", "subcategory does not belong to category")
	ErrCategoryExists      = apperr.New(apperr.KindBadRequest, "category_already_exists", "category already exists")
	ErrSubcategoryExists   = apperr.New(apperr.KindBadRequest, "subcategory_already_exists", "subcategory already exists")
	ErrInvalidName         = apperr.New(apperr.KindBadRequest, "invalid_name", "name is required")
)

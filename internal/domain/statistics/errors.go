package statistics

import "shared-finance-go/internal/domain/apperr"

var (
	ErrSubcategoriesWithoutCategories = apperr.New(apperr.KindBadRequest, "subcategories_without_categories", "subcategories filter requires categories")
	ErrInvalidFilter                  = apperr.New(apperr.KindBadRequest, "invalid_filter", "invalid statistics filter")
)

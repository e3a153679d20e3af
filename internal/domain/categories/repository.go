package categories

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetCategoryByID(ctx context.Context, categoryID string) (*Category, error)
	FindCategoryByName(ctx context.Context, accountID, name string) (*Category, error)
	ListCategories(ctx context.Context, accountID string) ([]Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	GetSubcategoryByID(ctx context.Context, subcategoryID string) (*Subcategory, error)
	FindSubcategoryByName(ctx context.Context, categoryID, name string) (*Subcategory, error)
	ListSubcategories(ctx context.Context, categoryIDs []string) ([]Subcategory, error)
	CreateSubcategory(ctx context.Context, subcategory *Subcategory) error
	UpdateSubcategory(ctx context.Context, subcategory *Subcategory) error
	DeactivateSubcategories(ctx context.Context, categoryID string) error
}

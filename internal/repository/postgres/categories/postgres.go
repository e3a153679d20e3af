package categories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	categoriesdomain "shared-finance-go/internal/domain/categories"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(categoriesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetCategoryByID(ctx context.Context, categoryID string) (*categoriesdomain.Category, error) {
	var category categoriesdomain.Category
	if err := r.db.WithContext(ctx).Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoriesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) FindCategoryByName(ctx context.Context, accountID, name string) (*categoriesdomain.Category, error) {
	var category categoriesdomain.Category
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND LOWER(name) = LOWER(?)", accountID, name).
		Order("is_active desc").
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, categoriesdomain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context, accountID string) ([]categoriesdomain.Category, error) {
	var categories []categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND is_active = ?", accountID, true).
		Order("name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *categoriesdomain.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	return duplicateAs(err, categoriesdomain.ErrCategoryExists)
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *categoriesdomain.Category) error {
	err := r.db.WithContext(ctx).Model(&categoriesdomain.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":      category.Name,
			"is_active": category.IsActive,
		}).Error
	return duplicateAs(err, categoriesdomain.ErrCategoryExists)
}

func (r *PostgresRepository) GetSubcategoryByID(ctx context.Context, subcategoryID string) (*categoriesdomain.Subcategory, error) {
	var subcategory categoriesdomain.Subcategory
	if err := r.db.WithContext(ctx).Where("id = ?", subcategoryID).First(&subcategory).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoriesdomain.ErrSubcategoryNotFound
		}
		return nil, err
	}
	return &subcategory, nil
}

func (r *PostgresRepository) FindSubcategoryByName(ctx context.Context, categoryID, name string) (*categoriesdomain.Subcategory, error) {
	var subcategory categoriesdomain.Subcategory
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND LOWER(name) = LOWER(?)", categoryID, name).
		Order("is_active desc").
		First(&subcategory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, categoriesdomain.ErrSubcategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subcategory, nil
}

func (r *PostgresRepository) ListSubcategories(ctx context.Context, categoryIDs []string) ([]categoriesdomain.Subcategory, error) {
	if len(categoryIDs) == 0 {
		return []categoriesdomain.Subcategory{}, nil
	}

	var subcategories []categoriesdomain.Subcategory
	if err := r.db.WithContext(ctx).
		Where("category_id IN ? AND is_active = ?", categoryIDs, true).
		Order("name asc").
		Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (r *PostgresRepository) CreateSubcategory(ctx context.Context, subcategory *categoriesdomain.Subcategory) error {
	err := r.db.WithContext(ctx).Create(subcategory).Error
	return duplicateAs(err, categoriesdomain.ErrSubcategoryExists)
}

func (r *PostgresRepository) UpdateSubcategory(ctx context.Context, subcategory *categoriesdomain.Subcategory) error {
	err := r.db.WithContext(ctx).Model(&categoriesdomain.Subcategory{}).
		Where("id = ?", subcategory.ID).
		Updates(map[string]interface{}{
			"name":      subcategory.Name,
			"is_active": subcategory.IsActive,
		}).Error
	return duplicateAs(err, categoriesdomain.ErrSubcategoryExists)
}

func (r *PostgresRepository) DeactivateSubcategories(ctx context.Context, categoryID string) error {
	return r.db.WithContext(ctx).Model(&categoriesdomain.Subcategory{}).
		Where("category_id = ?", categoryID).
		Update("is_active", false).Error
}

// duplicateAs maps a violation of the active-name unique index to target.
// Concurrent writers can both pass the name lookup before either commits.
func duplicateAs(err, target error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return target
	}
	return err
}

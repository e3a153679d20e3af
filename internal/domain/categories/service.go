package categories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const defaultListCacheTTL = time.Minute

type Service struct {
	repo     Repository
	cache    ListCache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, nil, 0)
}

func NewServiceWithCache(repo Repository, cache ListCache, ttl time.Duration) *Service {
	if cache == nil {
		cache = noopListCache{}
	}
	if ttl <= 0 {
		ttl = defaultListCacheTTL
	}
	return &Service{repo: repo, cache: cache, cacheTTL: ttl}
}

func (s *Service) ResolveCategory(ctx context.Context, categoryID string) (*Category, error) {
	if _, err := uuid.Parse(categoryID); err != nil {
		return nil, ErrCategoryNotFound
	}
	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// ResolveAccountCategory resolves categoryID and checks it belongs to accountID.
func (s *Service) ResolveAccountCategory(ctx context.Context, accountID, categoryID string) (*Category, error) {
	category, err := s.ResolveCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.AccountID != accountID {
		return nil, ErrCategoryForbidden
	}
	return category, nil
}

func (s *Service) ResolveSubcategory(ctx context.Context, subcategoryID string, category *Category) (*Subcategory, error) {
	if _, err := uuid.Parse(subcategoryID); err != nil {
		return nil, ErrSubcategoryNotFound
	}
	subcategory, err := s.repo.GetSubcategoryByID(ctx, subcategoryID)
	if err != nil {
		return nil, err
	}
	if !subcategory.IsActive {
		return nil, ErrSubcategoryNotFound
	}
	if category == nil || subcategory.CategoryID != category.ID {
		return nil, ErrInvalidRelation
	}
	return subcategory, nil
}

func (s *Service) ListCategories(ctx context.Context, accountID string) ([]CategoryWithSubcategories, error) {
	if cached, ok := s.cache.GetByAccountID(accountID); ok {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx, accountID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}

	subcategories, err := s.repo.ListSubcategories(ctx, ids)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]Subcategory, len(categories))
	for _, subcategory := range subcategories {
		byCategory[subcategory.CategoryID] = append(byCategory[subcategory.CategoryID], subcategory)
	}

	result := make([]CategoryWithSubcategories, 0, len(categories))
	for _, category := range categories {
		items := byCategory[category.ID]
		if items == nil {
			items = []Subcategory{}
		}
		result = append(result, CategoryWithSubcategories{Category: category, Subcategories: items})
	}

	s.cache.SetByAccountID(accountID, result, s.cacheTTL)
	return result, nil
}

// CreateCategory creates a category or reactivates a soft-deleted one with
// the same normalized name.
func (s *Service) CreateCategory(ctx context.Context, accountID, name string) (*Category, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	var result Category
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.FindCategoryByName(ctx, accountID, name)
		if err != nil && !errors.Is(err, ErrCategoryNotFound) {
			return err
		}

		if existing != nil {
			if existing.IsActive {
				return ErrCategoryExists
			}
			existing.IsActive = true
			existing.Name = name
			if err := tx.UpdateCategory(ctx, existing); err != nil {
				return err
			}
			result = *existing
			return nil
		}

		category := Category{
			ID:        uuid.NewString(),
			AccountID: accountID,
			Name:      name,
			IsActive:  true,
		}
		if err := tx.CreateCategory(ctx, &category); err != nil {
			return err
		}
		result = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteByAccountID(accountID)
	return &result, nil
}

func (s *Service) CreateSubcategory(ctx context.Context, accountID, categoryID, name string) (*Subcategory, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	category, err := s.ResolveAccountCategory(ctx, accountID, categoryID)
	if err != nil {
		return nil, err
	}

	var result Subcategory
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.FindSubcategoryByName(ctx, category.ID, name)
		if err != nil && !errors.Is(err, ErrSubcategoryNotFound) {
			return err
		}

		if existing != nil {
			if existing.IsActive {
				return ErrSubcategoryExists
			}
			existing.IsActive = true
			existing.Name = name
			if err := tx.UpdateSubcategory(ctx, existing); err != nil {
				return err
			}
			result = *existing
			return nil
		}

		subcategory := Subcategory{
			ID:         uuid.NewString(),
			CategoryID: category.ID,
			Name:       name,
			IsActive:   true,
		}
		if err := tx.CreateSubcategory(ctx, &subcategory); err != nil {
			return err
		}
		result = subcategory
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteByAccountID(accountID)
	return &result, nil
}

func (s *Service) UpdateCategory(ctx context.Context, accountID, categoryID, name string) (*Category, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	category, err := s.ResolveAccountCategory(ctx, accountID, categoryID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindCategoryByName(ctx, accountID, name)
	if err != nil && !errors.Is(err, ErrCategoryNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != category.ID && existing.IsActive {
		return nil, ErrCategoryExists
	}

	category.Name = name
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.cache.DeleteByAccountID(accountID)
	return category, nil
}

// DeleteCategory soft-deletes the category and its subcategories.
func (s *Service) DeleteCategory(ctx context.Context, accountID, categoryID string) error {
	category, err := s.ResolveAccountCategory(ctx, accountID, categoryID)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		category.IsActive = false
		if err := tx.UpdateCategory(ctx, category); err != nil {
			return err
		}
		return tx.DeactivateSubcategories(ctx, category.ID)
	})
	if err != nil {
		return err
	}

	s.cache.DeleteByAccountID(accountID)
	return nil
}

func (s *Service) DeleteSubcategory(ctx context.Context, accountID, subcategoryID string) error {
	if _, err := uuid.Parse(subcategoryID); err != nil {
		return ErrSubcategoryNotFound
	}
	subcategory, err := s.repo.GetSubcategoryByID(ctx, subcategoryID)
	if err != nil {
		return err
	}
	if !subcategory.IsActive {
		return ErrSubcategoryNotFound
	}
	if _, err := s.ResolveAccountCategory(ctx, accountID, subcategory.CategoryID); err != nil {
		return err
	}

	subcategory.IsActive = false
	if err := s.repo.UpdateSubcategory(ctx, subcategory); err != nil {
		return err
	}

	s.cache.DeleteByAccountID(accountID)
	return nil
}

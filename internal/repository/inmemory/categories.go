package inmemory

import (
	"sync"
	"time"

	categoriesdomain "shared-finance-go/internal/domain/categories"
)

// InMemoryCategoriesCache keeps the category tree of each account.
type InMemoryCategoriesCache struct {
	mu    sync.RWMutex
	items map[string]categoriesItem
	now   func() time.Time
}

type categoriesItem struct {
	value     []categoriesdomain.CategoryWithSubcategories
	expiresAt time.Time
}

func NewInMemoryCategoriesCache() *InMemoryCategoriesCache {
	return &InMemoryCategoriesCache{
		items: make(map[string]categoriesItem),
		now:   time.Now,
	}
}

func (c *InMemoryCategoriesCache) GetByAccountID(accountID string) ([]categoriesdomain.CategoryWithSubcategories, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[accountID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[accountID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, accountID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneCategories(item.value), true
}

func (c *InMemoryCategoriesCache) SetByAccountID(accountID string, categories []categoriesdomain.CategoryWithSubcategories, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteByAccountID(accountID)
		return
	}

	c.mu.Lock()
	c.items[accountID] = categoriesItem{
		value:     cloneCategories(categories),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *InMemoryCategoriesCache) DeleteByAccountID(accountID string) {
	c.mu.Lock()
	delete(c.items, accountID)
	c.mu.Unlock()
}

// cloneCategories copies the subcategory slices too so callers cannot mutate
// cached entries.
func cloneCategories(categories []categoriesdomain.CategoryWithSubcategories) []categoriesdomain.CategoryWithSubcategories {
	if categories == nil {
		return nil
	}
	cloned := make([]categoriesdomain.CategoryWithSubcategories, len(categories))
	for i := range categories {
		cloned[i].Category = categories[i].Category
		cloned[i].Subcategories = append([]categoriesdomain.Subcategory{}, categories[i].Subcategories...)
	}
	return cloned
}

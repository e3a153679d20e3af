package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountsdomain "shared-finance-go/internal/domain/accounts"
	categoriesdomain "shared-finance-go/internal/domain/categories"
)

func TestAccountsCacheExpires(t *testing.T) {
	cache := NewInMemoryAccountsCache()
	current := time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }
	ctx := context.Background()

	cache.SetByID(ctx, "acc-1", &accountsdomain.Account{ID: "acc-1", Name: "Casa"}, time.Minute)

	got, ok := cache.GetByID(ctx, "acc-1")
	require.True(t, ok)
	assert.Equal(t, "Casa", got.Name)

	got.Name = "changed"
	again, _ := cache.GetByID(ctx, "acc-1")
	assert.Equal(t, "Casa", again.Name)

	current = current.Add(2 * time.Minute)
	_, ok = cache.GetByID(ctx, "acc-1")
	assert.False(t, ok)
}

func TestAccountsCacheDeleteAndZeroTTL(t *testing.T) {
	cache := NewInMemoryAccountsCache()
	ctx := context.Background()

	cache.SetByID(ctx, "acc-1", &accountsdomain.Account{ID: "acc-1"}, time.Minute)
	cache.DeleteByID(ctx, "acc-1")
	_, ok := cache.GetByID(ctx, "acc-1")
	assert.False(t, ok)

	cache.SetByID(ctx, "acc-2", &accountsdomain.Account{ID: "acc-2"}, 0)
	_, ok = cache.GetByID(ctx, "acc-2")
	assert.False(t, ok)
}

func TestCategoriesCacheClonesSubcategories(t *testing.T) {
	cache := NewInMemoryCategoriesCache()
	tree := []categoriesdomain.CategoryWithSubcategories{{
		Category:      categoriesdomain.Category{ID: "cat-1", Name: "Comida"},
		Subcategories: []categoriesdomain.Subcategory{{ID: "sub-1", Name: "Super"}},
	}}

	cache.SetByAccountID("acc-1", tree, time.Minute)
	tree[0].Subcategories[0].Name = "mutated"

	got, ok := cache.GetByAccountID("acc-1")
	require.True(t, ok)
	assert.Equal(t, "Super", got[0].Subcategories[0].Name)

	cache.DeleteByAccountID("acc-1")
	_, ok = cache.GetByAccountID("acc-1")
	assert.False(t, ok)
}

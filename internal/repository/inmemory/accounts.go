package inmemory

import (
	"context"
	"sync"
	"time"

	accountsdomain "shared-finance-go/internal/domain/accounts"
)

type InMemoryAccountsCache struct {
	mu    sync.RWMutex
	items map[string]accountItem
	now   func() time.Time
}

type accountItem struct {
	value     accountsdomain.Account
	expiresAt time.Time
}

func NewInMemoryAccountsCache() *InMemoryAccountsCache {
	return &InMemoryAccountsCache{
		items: make(map[string]accountItem),
		now:   time.Now,
	}
}

func (c *InMemoryAccountsCache) GetByID(_ context.Context, accountID string) (*accountsdomain.Account, bool) {
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

	value := item.value
	return &value, true
}

func (c *InMemoryAccountsCache) SetByID(_ context.Context, accountID string, account *accountsdomain.Account, ttl time.Duration) {
	if account == nil || ttl <= 0 {
		c.delete(accountID)
		return
	}

	c.mu.Lock()
	c.items[accountID] = accountItem{
		value:     *account,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *InMemoryAccountsCache) DeleteByID(_ context.Context, accountID string) {
	c.delete(accountID)
}

func (c *InMemoryAccountsCache) delete(accountID string) {
	c.mu.Lock()
	delete(c.items, accountID)
	c.mu.Unlock()
}

func (c *InMemoryAccountsCache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]accountItem)
	c.mu.Unlock()
}

package categories

import "time"

type ListCache interface {
	GetByAccountID(accountID string) ([]CategoryWithSubcategories, bool)
	SetByAccountID(accountID string, categories []CategoryWithSubcategories, ttl time.Duration)
	DeleteByAccountID(accountID string)
}

type noopListCache struct{}

func (noopListCache) GetByAccountID(string) ([]CategoryWithSubcategories, bool) {
	return nil, false
}

func (noopListCache) SetByAccountID(string, []CategoryWithSubcategories, time.Duration) {}

func (noopListCache) DeleteByAccountID(string) {}

package accounts

import (
	"context"
	"time"
)

// Cache holds account records by id. Membership is never cached.
type Cache interface {
	GetByID(ctx context.Context, accountID string) (*Account, bool)
	SetByID(ctx context.Context, accountID string, account *Account, ttl time.Duration)
	DeleteByID(ctx context.Context, accountID string)
}

type noopCache struct{}

func (noopCache) GetByID(context.Context, string) (*Account, bool) {
	return nil, false
}

func (noopCache) SetByID(context.Context, string, *Account, time.Duration) {}

func (noopCache) DeleteByID(context.Context, string) {}

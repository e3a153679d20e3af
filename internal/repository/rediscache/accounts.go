// Package rediscache stores account lookups in Redis so several API
// replicas share one cache.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	accountsdomain "shared-finance-go/internal/domain/accounts"
	"shared-finance-go/pkg/logger"
)

const accountKeyPrefix = "finance:account:"

var _ accountsdomain.Cache = (*AccountsCache)(nil)

type AccountsCache struct {
	client *redis.Client
	log    logger.Logger
}

func NewAccountsCache(client *redis.Client, log logger.Logger) *AccountsCache {
	return &AccountsCache{client: client, log: log}
}

// Connect parses a redis:// URL, falling back to a bare host:port address,
// and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func (c *AccountsCache) GetByID(ctx context.Context, accountID string) (*accountsdomain.Account, bool) {
	raw, err := c.client.Get(ctx, accountKey(accountID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache.accounts: get failed", "account_id", accountID, "error", err)
		}
		return nil, false
	}

	var account accountsdomain.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		c.log.Warn("cache.accounts: decode failed", "account_id", accountID, "error", err)
		return nil, false
	}
	return &account, true
}

func (c *AccountsCache) SetByID(ctx context.Context, accountID string, account *accountsdomain.Account, ttl time.Duration) {
	if account == nil || ttl <= 0 {
		c.DeleteByID(ctx, accountID)
		return
	}

	data, err := json.Marshal(account)
	if err != nil {
		c.log.Warn("cache.accounts: encode failed", "account_id", accountID, "error", err)
		return
	}
	if err := c.client.SetEx(ctx, accountKey(accountID), data, ttl).Err(); err != nil {
		c.log.Warn("cache.accounts: set failed", "account_id", accountID, "error", err)
	}
}

func (c *AccountsCache) DeleteByID(ctx context.Context, accountID string) {
	if err := c.client.Del(ctx, accountKey(accountID)).Err(); err != nil {
		c.log.Warn("cache.accounts: delete failed", "account_id", accountID, "error", err)
	}
}

func accountKey(accountID string) string {
	return accountKeyPrefix + accountID
}

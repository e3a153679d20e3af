package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shared-finance-go/internal/config"
	accountsdomain "shared-finance-go/internal/domain/accounts"
	categoriesdomain "shared-finance-go/internal/domain/categories"
	creditpaymentsdomain "shared-finance-go/internal/domain/creditpayments"
	expensesdomain "shared-finance-go/internal/domain/expenses"
	statisticsdomain "shared-finance-go/internal/domain/statistics"
	usersdomain "shared-finance-go/internal/domain/users"
	"shared-finance-go/internal/repository/inmemory"
	accountsrepo "shared-finance-go/internal/repository/postgres/accounts"
	categoriesrepo "shared-finance-go/internal/repository/postgres/categories"
	creditpaymentsrepo "shared-finance-go/internal/repository/postgres/creditpayments"
	expensesrepo "shared-finance-go/internal/repository/postgres/expenses"
	statisticsrepo "shared-finance-go/internal/repository/postgres/statistics"
	usersrepo "shared-finance-go/internal/repository/postgres/users"
	"shared-finance-go/internal/repository/rediscache"
	"shared-finance-go/internal/transport/httpserver"
	"shared-finance-go/internal/transport/httpserver/handler"
	commonhandler "shared-finance-go/internal/transport/httpserver/handler/common"
	expenseshandler "shared-finance-go/internal/transport/httpserver/handler/expenses"
	"shared-finance-go/pkg/logger"
)

// Caches are the optional lookup caches; nil fields disable caching.
type Caches struct {
	Accounts   accountsdomain.Cache
	Categories categoriesdomain.ListCache
}

// NewCaches builds the caches selected by cfg. The redis client is returned
// so the caller can close it.
func NewCaches(ctx context.Context, cfg config.CacheConfig, log logger.Logger) (Caches, *redis.Client, error) {
	switch cfg.Driver {
	case config.CacheDriverNone:
		return Caches{}, nil, nil
	case config.CacheDriverRedis:
		client, err := rediscache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return Caches{}, nil, err
		}
		return Caches{
			Accounts:   rediscache.NewAccountsCache(client, log),
			Categories: inmemory.NewInMemoryCategoriesCache(),
		}, client, nil
	default:
		return Caches{
			Accounts:   inmemory.NewInMemoryAccountsCache(),
			Categories: inmemory.NewInMemoryCategoriesCache(),
		}, nil, nil
	}
}

// NewRouter wires repositories, services and handlers over dbConn.
func NewRouter(cfg config.Config, dbConn *gorm.DB, caches Caches, log logger.Logger) (http.Handler, error) {
	loc, err := cfg.App.Location()
	if err != nil {
		return nil, fmt.Errorf("app timezone: %w", err)
	}

	tokens := usersdomain.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	usersService := usersdomain.NewService(usersrepo.NewPostgres(dbConn), tokens)

	accountsService := accountsdomain.NewServiceWithCache(accountsrepo.NewPostgres(dbConn), caches.Accounts, cfg.Cache.TTL)
	categoriesService := categoriesdomain.NewServiceWithCache(categoriesrepo.NewPostgres(dbConn), caches.Categories, cfg.Cache.TTL)
	creditPaymentsService := creditpaymentsdomain.NewService(creditpaymentsrepo.NewPostgres(dbConn), accountsService)
	expensesService := expensesdomain.NewServiceWithLocation(expensesrepo.NewPostgres(dbConn), categoriesService, accountsService, creditPaymentsService, loc)
	statisticsService := statisticsdomain.NewServiceWithLocation(statisticsrepo.NewPostgres(dbConn), loc)

	handlers := handler.New(
		commonhandler.New(usersService, accountsService, log),
		expenseshandler.New(expensesService, creditPaymentsService, categoriesService, statisticsService, log),
	)

	return httpserver.NewRouter(cfg, handlers, httpserver.Dependencies{
		Tokens:   usersService,
		Users:    usersService,
		Accounts: accountsService,
	}, log), nil
}

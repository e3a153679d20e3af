package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shared-finance-go/internal/config"
	"shared-finance-go/internal/db"
	"shared-finance-go/internal/transport/httpserver"
	"shared-finance-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *redis.Client
	log        logger.Logger
}

func New(ctx context.Context, log logger.Logger, configFile string) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log, configFile)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Prepare(dbConn, cfg.DB.Driver, log); err != nil {
		_ = closeDB(dbConn)
		return nil, err
	}

	log.Info("app: initializing caches", "driver", cfg.Cache.Driver)
	caches, redisClient, err := NewCaches(ctx, cfg.Cache, log)
	if err != nil {
		_ = closeDB(dbConn)
		return nil, err
	}

	log.Info("app: initializing router")
	router, err := NewRouter(cfg, dbConn, caches, log)
	if err != nil {
		_ = closeDB(dbConn)
		return nil, err
	}

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		redis:      redisClient,
		log:        log,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, closeDB(a.db))
	}
	return errors.Join(errs...)
}

// Migrate loads config, applies the schema and closes the connection.
func Migrate(log logger.Logger, configFile string) error {
	cfg, err := config.Load(log, configFile)
	if err != nil {
		return err
	}

	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeDB(dbConn) }()

	return db.Prepare(dbConn, cfg.DB.Driver, log)
}

func closeDB(dbConn *gorm.DB) error {
	sqlDB, err := dbConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shared-finance-go/internal/config"
	"shared-finance-go/pkg/logger"
)

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
)

// Open connects to the configured database driver.
func Open(cfg config.DBConfig, log logger.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         newGormLog(log, gormlogger.Warn),
	}

	var (
		gormDB *gorm.DB
		err    error
	)
	switch cfg.Driver {
	case config.DBDriverSQLite:
		log.Info("db: opening sqlite", "path", cfg.GetDSN())
		gormDB, err = gorm.Open(sqlite.Open(sqliteDSN(cfg.GetDSN())), gormCfg)
	default:
		if cfg.DSN != "" {
			log.Info("db: connecting using DSN")
		} else {
			log.Info("db: connecting to postgres", "host", cfg.Host, "port", cfg.Port, "dbname", cfg.Name, "sslmode", cfg.SSLMode)
		}
		gormDB, err = gorm.Open(postgres.Open(cfg.GetDSN()), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = defaultMaxIdleConns
	}
	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime == 0 {
		connMaxLifetime = defaultConnMaxLifetime
	}
	if cfg.Driver == config.DBDriverSQLite {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY.
		maxOpen, maxIdle = 1, 1
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	log.Info("db: connected", "driver", cfg.Driver)
	return gormDB, nil
}

func sqliteDSN(path string) string {
	switch {
	case path == "" || path == ":memory:":
		return "file::memory:?_foreign_keys=on"
	case strings.HasPrefix(path, "file:"):
		return path
	}
	return "file:" + path + "?_foreign_keys=on"
}

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shared-finance-go/internal/config"
	"shared-finance-go/pkg/logger"
)

func TestSQLiteDSN(t *testing.T) {
	cases := map[string]string{
		"":                        "file::memory:?_foreign_keys=on",
		":memory:":                "file::memory:?_foreign_keys=on",
		"data/finance.db":         "file:data/finance.db?_foreign_keys=on",
		"file:custom.db?mode=rwc": "file:custom.db?mode=rwc",
	}
	for path, want := range cases {
		assert.Equal(t, want, sqliteDSN(path), "path %q", path)
	}
}

func TestOpenSQLiteAndPrepare(t *testing.T) {
	log := logger.Nop()
	gormDB, err := Open(config.DBConfig{Driver: config.DBDriverSQLite, SQLitePath: ":memory:"}, log)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, Prepare(gormDB, config.DBDriverSQLite, log))

	for _, table := range []string{"users", "accounts", "account_members", "categories", "subcategories", "credit_payments", "expenses"} {
		assert.True(t, gormDB.Migrator().HasTable(table), "table %s", table)
	}
}

func TestEmbeddedMigrationsAreOrdered(t *testing.T) {
	names, err := migrationNames(migrationFiles)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_init.sql", names[0])
	assert.IsIncreasing(t, names)
}

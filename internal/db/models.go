package db

import (
	"fmt"

	"gorm.io/gorm"

	"shared-finance-go/internal/domain/accounts"
	"shared-finance-go/internal/domain/categories"
	"shared-finance-go/internal/domain/creditpayments"
	"shared-finance-go/internal/domain/expenses"
	"shared-finance-go/internal/domain/users"
)

// Models lists every persisted type in dependency order.
func Models() []interface{} {
	return []interface{}{
		&users.User{},
		&accounts.Account{},
		&accounts.AccountMember{},
		&categories.Category{},
		&categories.Subcategory{},
		&creditpayments.CreditPayment{},
		&expenses.Expense{},
	}
}

// AutoMigrate creates the schema from the models. It backs the sqlite driver;
// postgres uses the SQL files applied by Migrate.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	for _, stmt := range activeNameIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// activeNameIndexes mirror the partial indexes of the SQL migrations. Struct
// tags cannot express an index on LOWER(name) restricted to active rows.
var activeNameIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_active_name
		ON categories (account_id, LOWER(name)) WHERE is_active`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_subcategories_active_name
		ON subcategories (category_id, LOWER(name)) WHERE is_active`,
}

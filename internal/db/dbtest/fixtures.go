package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shared-finance-go/internal/domain/accounts"
	"shared-finance-go/internal/domain/categories"
	"shared-finance-go/internal/domain/users"
)

func SeedUser(t *testing.T, gormDB *gorm.DB, name string) users.User {
	t.Helper()
	user := users.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, gormDB.Create(&user).Error)
	return user
}

// SeedAccount creates an active account administered by adminID with adminID
// as its only member.
func SeedAccount(t *testing.T, gormDB *gorm.DB, adminID string) accounts.Account {
	t.Helper()
	account := accounts.Account{
		ID:            uuid.NewString(),
		Name:          "Casa",
		MaxNumUsers:   accounts.DefaultMaxNumUsers,
		AccessKey:     uuid.NewString()[:8],
		IsActive:      true,
		AdminUserID:   adminID,
		CreatorUserID: adminID,
	}
	require.NoError(t, gormDB.Create(&account).Error)
	require.NoError(t, gormDB.Omit("Account").Create(&accounts.AccountMember{AccountID: account.ID, UserID: adminID}).Error)
	return account
}

func SeedCategory(t *testing.T, gormDB *gorm.DB, accountID, name string) categories.Category {
	t.Helper()
	category := categories.Category{ID: uuid.NewString(), AccountID: accountID, Name: name, IsActive: true}
	require.NoError(t, gormDB.Create(&category).Error)
	return category
}

func SeedSubcategory(t *testing.T, gormDB *gorm.DB, categoryID, name string) categories.Subcategory {
	t.Helper()
	subcategory := categories.Subcategory{ID: uuid.NewString(), CategoryID: categoryID, Name: name, IsActive: true}
	require.NoError(t, gormDB.Create(&subcategory).Error)
	return subcategory
}

package accounts

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountsdomain "shared-finance-go/internal/domain/accounts"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(accountsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetAccount(ctx context.Context, accountID string) (*accountsdomain.Account, error) {
	var account accountsdomain.Account
	if err := r.db.WithContext(ctx).Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accountsdomain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) GetAccountByAccessKey(ctx context.Context, accessKey string) (*accountsdomain.Account, error) {
	var account accountsdomain.Account
	if err := r.db.WithContext(ctx).Where("access_key = ?", accessKey).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accountsdomain.ErrAccessKeyNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) ListAccountsByUser(ctx context.Context, userID string) ([]accountsdomain.Account, error) {
	var accounts []accountsdomain.Account
	if err := r.db.WithContext(ctx).
		Table("accounts").
		Select("accounts.*").
		Joins("join account_members on account_members.account_id = accounts.id").
		Where("account_members.user_id = ? AND accounts.is_active = ?", userID, true).
		Order("account_members.joined_at asc").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, accountID string) ([]accountsdomain.AccountMember, error) {
	var members []accountsdomain.AccountMember
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("joined_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) ListMembersWithProfiles(ctx context.Context, accountID string) ([]accountsdomain.MemberProfile, error) {
	type memberRow struct {
		UserID      string    `gorm:"column:user_id"`
		JoinedAt    time.Time `gorm:"column:joined_at"`
		Name        *string   `gorm:"column:name"`
		Email       *string   `gorm:"column:email"`
		AdminUserID string    `gorm:"column:admin_user_id"`
	}

	var rows []memberRow
	if err := r.db.WithContext(ctx).
		Table("account_members").
		Select("account_members.user_id, account_members.joined_at, users.name, users.email, accounts.admin_user_id").
		Joins("join accounts on accounts.id = account_members.account_id").
		Joins("left join users on users.id = account_members.user_id").
		Where("account_members.account_id = ?", accountID).
		Order("account_members.joined_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]accountsdomain.MemberProfile, 0, len(rows))
	for _, row := range rows {
		members = append(members, accountsdomain.MemberProfile{
			UserID:   row.UserID,
			Name:     valueOrEmpty(row.Name),
			Email:    valueOrEmpty(row.Email),
			IsAdmin:  row.UserID == row.AdminUserID,
			JoinedAt: row.JoinedAt,
		})
	}
	return members, nil
}

func (r *PostgresRepository) IsMember(ctx context.Context, accountID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&accountsdomain.AccountMember{}).
		Where("account_id = ? AND user_id = ?", accountID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CountMembers(ctx context.Context, accountID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&accountsdomain.AccountMember{}).Where("account_id = ?", accountID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CreateAccount(ctx context.Context, account *accountsdomain.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *PostgresRepository) AddMember(ctx context.Context, member *accountsdomain.AccountMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, accountID, userID string) error {
	return r.db.WithContext(ctx).Delete(&accountsdomain.AccountMember{}, "account_id = ? AND user_id = ?", accountID, userID).Error
}

func (r *PostgresRepository) UpdateAdmin(ctx context.Context, accountID, userID string) error {
	return r.db.WithContext(ctx).Model(&accountsdomain.Account{}).Where("id = ?", accountID).Update("admin_user_id", userID).Error
}

func (r *PostgresRepository) SetActive(ctx context.Context, accountID string, active bool) error {
	return r.db.WithContext(ctx).Model(&accountsdomain.Account{}).Where("id = ?", accountID).Update("is_active", active).Error
}

func (r *PostgresRepository) IsAccessKeyTaken(ctx context.Context, accessKey string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&accountsdomain.Account{}).Where("access_key = ?", accessKey).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

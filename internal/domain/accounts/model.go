package accounts

import "time"

const DefaultMaxNumUsers = 10

type Account struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"not null"`
	Description   string    `gorm:"type:text"`
	MaxNumUsers   int       `gorm:"not null;default:10"`
	AccessKey     string    `gorm:"size:8;not null;uniqueIndex"`
	IsActive      bool      `gorm:"not null"`
	AdminUserID   string    `gorm:"type:uuid;index;not null"`
	CreatorUserID string    `gorm:"type:uuid;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

type AccountMember struct {
	AccountID string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;primaryKey;index"`
	JoinedAt  time.Time `gorm:"autoCreateTime"`

	Account Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
}

type MemberProfile struct {
	UserID   string
	Name     string
	Email    string
	IsAdmin  bool
	JoinedAt time.Time
}

type CreateAccountInput struct {
	UserID      string
	Name        string
	Description string
	MaxNumUsers int
}

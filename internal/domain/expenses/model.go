package expenses

import (
	"time"

	"shared-finance-go/internal/domain/creditpayments"
)

const (
	DefaultLimit         = 5
	maxDescriptionLength = 50
)

// Expense is a dated transaction. NumDate, Month, Year, Week and DayName are
// derived from CompleteDate on every write.
type Expense struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	Amount          float64   `gorm:"not null"`
	Description     string    `gorm:"size:50"`
	CompleteDate    int64     `gorm:"not null;index"`
	NumDate         int       `gorm:"not null"`
	Month           int       `gorm:"not null"`
	Year            int       `gorm:"not null"`
	Week            int       `gorm:"not null"`
	DayName         string    `gorm:"size:16;not null"`
	CreditPaymentID *string   `gorm:"type:uuid;index"`
	AccountID       string    `gorm:"type:uuid;index;not null"`
	UserID          string    `gorm:"type:uuid;not null"`
	CategoryID      string    `gorm:"type:uuid;not null"`
	SubcategoryID   string    `gorm:"type:uuid;not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// ExpenseDetails is an expense with the names of the records it references.
type ExpenseDetails struct {
	Expense
	UserName        string
	CategoryName    string
	SubcategoryName string
	CreditPayment   *creditpayments.CreditPayment `gorm:"-"`
}

type CreateInput struct {
	AccountID         string
	UserID            string
	Amount            float64
	CompleteDate      int64
	Description       string
	Installments      int
	CreditPaymentName string
	CategoryID        string
	SubcategoryID     string
}

// UpdateInput carries a partial update; nil fields keep their stored value.
type UpdateInput struct {
	ID            string
	AccountID     string
	UserID        string
	Amount        *float64
	CompleteDate  *int64
	Description   *string
	CategoryID    *string
	SubcategoryID *string
}

type PayInstallmentInput struct {
	CreditPaymentID string
	AccountID       string
	Amount          float64
	CompleteDate    int64
	Description     string
}

type Pagination struct {
	Limit int
	Skip  int
}

type Page struct {
	TotalExpenses int64
	Limit         int
	Skip          int
	Expenses      []ExpenseDetails
}

type PrincipalAmounts struct {
	TotalAmountOnMonth           float64
	TotalAmountOnWeek            float64
	TotalAmountOnDay             float64
	TotalAmountFixedCostsMonthly float64
}

// Period selects stored partition columns; zero fields are ignored.
type Period struct {
	NumDate int
	Month   int
	Week    int
	Year    int
}

type RemoveResult struct {
	StatusCode int
	Message    string
	Expense    Expense
}

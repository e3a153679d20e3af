package creditpayments

import "time"

const DefaultName = "no reference name"

// CreditPayment is an installment purchase. The expense that created it is
// installment 1; every later installment adds one linked expense.
type CreditPayment struct {
	ID               string    `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"size:30;not null"`
	Installments     int       `gorm:"not null"`
	InstallmentsPaid int       `gorm:"not null"`
	IsActive         bool      `gorm:"not null"`
	AccountID        string    `gorm:"type:uuid;index;not null"`
	UserID           string    `gorm:"type:uuid;not null"`
	CategoryID       string    `gorm:"type:uuid;not null"`
	SubcategoryID    string    `gorm:"type:uuid;not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (CreditPayment) TableName() string {
	return "credit_payments"
}

func (c CreditPayment) Pending() bool {
	return c.InstallmentsPaid != c.Installments
}

// ExpenseRef is an installment expense as listed under its credit payment.
type ExpenseRef struct {
	ID              string
	CreditPaymentID string
	Amount          float64
	Description     string
	CompleteDate    int64
	NumDate         int
	Month           int
	Year            int
	Week            int
	DayName         string
	UserID          string
	UserName        string
	CategoryID      string
	CategoryName    string
	SubcategoryID   string
	SubcategoryName string
}

type CreditPaymentWithExpenses struct {
	CreditPayment
	Expenses []ExpenseRef
}

type CreateInput struct {
	AccountID     string
	UserID        string
	CategoryID    string
	SubcategoryID string
	Name          string
	Installments  int
}

type Patch struct {
	Name         *string
	Installments *int
}

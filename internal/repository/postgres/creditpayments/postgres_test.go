package creditpayments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shared-finance-go/internal/db/dbtest"
	creditpaymentsdomain "shared-finance-go/internal/domain/creditpayments"
	expensesdomain "shared-finance-go/internal/domain/expenses"
)

type fixture struct {
	db            *gorm.DB
	repo          *PostgresRepository
	accountID     string
	userID        string
	categoryID    string
	subcategoryID string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gormDB := dbtest.Open(t)
	user := dbtest.SeedUser(t, gormDB, "ana")
	account := dbtest.SeedAccount(t, gormDB, user.ID)
	category := dbtest.SeedCategory(t, gormDB, account.ID, "Hogar")
	subcategory := dbtest.SeedSubcategory(t, gormDB, category.ID, "Muebles")
	return fixture{
		db:            gormDB,
		repo:          NewPostgres(gormDB),
		accountID:     account.ID,
		userID:        user.ID,
		categoryID:    category.ID,
		subcategoryID: subcategory.ID,
	}
}

func (f fixture) payment(t *testing.T, installments, paid int) creditpaymentsdomain.CreditPayment {
	t.Helper()
	payment := creditpaymentsdomain.CreditPayment{
		ID:               uuid.NewString(),
		Name:             "sofa",
		Installments:     installments,
		InstallmentsPaid: paid,
		IsActive:         true,
		AccountID:        f.accountID,
		UserID:           f.userID,
		CategoryID:       f.categoryID,
		SubcategoryID:    f.subcategoryID,
	}
	require.NoError(t, f.repo.Create(context.Background(), &payment))
	return payment
}

func (f fixture) expense(t *testing.T, creditPaymentID *string, amount float64, completeDate int64) expensesdomain.Expense {
	t.Helper()
	expense := expensesdomain.Expense{
		ID:              uuid.NewString(),
		Amount:          amount,
		CompleteDate:    completeDate,
		NumDate:         1,
		Month:           1,
		Year:            2026,
		Week:            1,
		DayName:         "Jueves",
		CreditPaymentID: creditPaymentID,
		AccountID:       f.accountID,
		UserID:          f.userID,
		CategoryID:      f.categoryID,
		SubcategoryID:   f.subcategoryID,
	}
	require.NoError(t, f.db.Create(&expense).Error)
	return expense
}

func TestIncrementInstallmentsPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payment := f.payment(t, 3, 1)

	require.NoError(t, f.repo.IncrementInstallmentsPaid(ctx, payment.ID))
	require.NoError(t, f.repo.IncrementInstallmentsPaid(ctx, payment.ID))
	require.NoError(t, f.repo.IncrementInstallmentsPaid(ctx, payment.ID))

	reloaded, err := f.repo.GetByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.InstallmentsPaid)

	err = f.repo.IncrementInstallmentsPaid(ctx, uuid.NewString())
	assert.ErrorIs(t, err, creditpaymentsdomain.ErrCreditPaymentNotFound)
}

func TestListActivePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	open := f.payment(t, 3, 1)
	f.payment(t, 2, 2)

	all, err := f.repo.ListActive(ctx, f.accountID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := f.repo.ListActive(ctx, f.accountID, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, open.ID, pending[0].ID)
}

func TestListExpensesJoinsNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payment := f.payment(t, 2, 2)
	f.expense(t, &payment.ID, 100, 2000)
	f.expense(t, &payment.ID, 100, 1000)
	f.expense(t, nil, 50, 1500)

	refs, err := f.repo.ListExpenses(ctx, []string{payment.ID})
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.EqualValues(t, 1000, refs[0].CompleteDate)
	assert.Equal(t, "ana", refs[0].UserName)
	assert.Equal(t, "Hogar", refs[0].CategoryName)
	assert.Equal(t, "Muebles", refs[0].SubcategoryName)
	assert.Equal(t, payment.ID, refs[0].CreditPaymentID)
}

func TestDeleteRemovesLinkedExpenses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payment := f.payment(t, 3, 2)
	f.expense(t, &payment.ID, 100, 1000)
	f.expense(t, &payment.ID, 100, 2000)
	standalone := f.expense(t, nil, 40, 3000)

	require.NoError(t, f.repo.Transaction(ctx, func(tx creditpaymentsdomain.Repository) error {
		return tx.Delete(ctx, payment.ID)
	}))

	var remaining []expensesdomain.Expense
	require.NoError(t, f.db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, standalone.ID, remaining[0].ID)

	_, err := f.repo.GetByID(ctx, payment.ID)
	assert.ErrorIs(t, err, creditpaymentsdomain.ErrCreditPaymentNotFound)

	err = f.repo.Delete(ctx, payment.ID)
	assert.ErrorIs(t, err, creditpaymentsdomain.ErrCreditPaymentNotFound)
}

func TestUpdateChangesNameAndInstallments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payment := f.payment(t, 3, 1)

	payment.Name = "sillon"
	payment.Installments = 6
	require.NoError(t, f.repo.Update(ctx, &payment))

	reloaded, err := f.repo.GetByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, "sillon", reloaded.Name)
	assert.Equal(t, 6, reloaded.Installments)
	assert.Equal(t, 1, reloaded.InstallmentsPaid)
}

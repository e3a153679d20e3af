package creditpayments

import (
	"context"
	"errors"

	"gorm.io/gorm"

	creditpaymentsdomain "shared-finance-go/internal/domain/creditpayments"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(creditpaymentsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, payment *creditpaymentsdomain.CreditPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*creditpaymentsdomain.CreditPayment, error) {
	var payment creditpaymentsdomain.CreditPayment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, creditpaymentsdomain.ErrCreditPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PostgresRepository) IncrementInstallmentsPaid(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&creditpaymentsdomain.CreditPayment{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("installments_paid", gorm.Expr("installments_paid + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return creditpaymentsdomain.ErrCreditPaymentNotFound
	}
	return nil
}

func (r *PostgresRepository) ListActive(ctx context.Context, accountID string, onlyPending bool) ([]creditpaymentsdomain.CreditPayment, error) {
	query := r.db.WithContext(ctx).Where("account_id = ? AND is_active = ?", accountID, true)
	if onlyPending {
		query = query.Where("installments_paid <> installments")
	}

	var payments []creditpaymentsdomain.CreditPayment
	if err := query.Order("created_at desc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PostgresRepository) ListExpenses(ctx context.Context, creditPaymentIDs []string) ([]creditpaymentsdomain.ExpenseRef, error) {
	if len(creditPaymentIDs) == 0 {
		return []creditpaymentsdomain.ExpenseRef{}, nil
	}

	var refs []creditpaymentsdomain.ExpenseRef
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Select(`expenses.id, expenses.credit_payment_id, expenses.amount, expenses.description,
			expenses.complete_date, expenses.num_date, expenses.month, expenses.year, expenses.week, expenses.day_name,
			expenses.user_id, users.name as user_name,
			expenses.category_id, categories.name as category_name,
			expenses.subcategory_id, subcategories.name as subcategory_name`).
		Joins("left join users on users.id = expenses.user_id").
		Joins("left join categories on categories.id = expenses.category_id").
		Joins("left join subcategories on subcategories.id = expenses.subcategory_id").
		Where("expenses.credit_payment_id IN ?", creditPaymentIDs).
		Order("expenses.complete_date asc").
		Scan(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *PostgresRepository) Update(ctx context.Context, payment *creditpaymentsdomain.CreditPayment) error {
	return r.db.WithContext(ctx).Model(&creditpaymentsdomain.CreditPayment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]interface{}{
			"name":         payment.Name,
			"installments": payment.Installments,
		}).Error
}

// Delete removes linked expenses explicitly so the cascade also holds on
// databases created without foreign keys.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Exec("DELETE FROM expenses WHERE credit_payment_id = ?", id).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&creditpaymentsdomain.CreditPayment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return creditpaymentsdomain.ErrCreditPaymentNotFound
	}
	return nil
}

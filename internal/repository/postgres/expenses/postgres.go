package expenses

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	creditpaymentsdomain "shared-finance-go/internal/domain/creditpayments"
	expensesdomain "shared-finance-go/internal/domain/expenses"
	creditpaymentsrepo "shared-finance-go/internal/repository/postgres/creditpayments"
)

const detailsSelect = "expenses.*, users.name AS user_name, categories.name AS category_name, subcategories.name AS subcategory_name"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(expensesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreditPayments() creditpaymentsdomain.Repository {
	return creditpaymentsrepo.NewPostgres(r.db)
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *PostgresRepository) GetExpenseByID(ctx context.Context, expenseID string) (*expensesdomain.Expense, error) {
	var expense expensesdomain.Expense
	if err := r.db.WithContext(ctx).Where("id = ?", expenseID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *PostgresRepository) GetExpenseDetails(ctx context.Context, expenseID string) (*expensesdomain.ExpenseDetails, error) {
	var rows []expensesdomain.ExpenseDetails
	if err := r.detailsQuery(ctx).
		Where("expenses.id = ?", expenseID).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, expensesdomain.ErrExpenseNotFound
	}

	if err := AttachCreditPayments(ctx, r.db, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (r *PostgresRepository) ListExpenses(ctx context.Context, accountID string, limit, skip int) ([]expensesdomain.ExpenseDetails, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&expensesdomain.Expense{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []expensesdomain.ExpenseDetails
	if err := r.detailsQuery(ctx).
		Where("expenses.account_id = ?", accountID).
		Order("expenses.complete_date desc").
		Order("expenses.created_at desc").
		Limit(limit).
		Offset(skip).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	if err := AttachCreditPayments(ctx, r.db, rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *PostgresRepository) UpdateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).Model(&expensesdomain.Expense{}).
		Where("id = ?", expense.ID).
		Updates(map[string]interface{}{
			"amount":         expense.Amount,
			"description":    expense.Description,
			"complete_date":  expense.CompleteDate,
			"num_date":       expense.NumDate,
			"month":          expense.Month,
			"year":           expense.Year,
			"week":           expense.Week,
			"day_name":       expense.DayName,
			"category_id":    expense.CategoryID,
			"subcategory_id": expense.SubcategoryID,
		}).Error
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	result := r.db.WithContext(ctx).Delete(&expensesdomain.Expense{}, "id = ?", expenseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return expensesdomain.ErrExpenseNotFound
	}
	return nil
}

func (r *PostgresRepository) SumAmount(ctx context.Context, accountID string, period expensesdomain.Period) (float64, error) {
	conditions := []string{"e.account_id = ?"}
	args := []interface{}{accountID}

	if period.NumDate != 0 {
		conditions = append(conditions, "e.num_date = ?")
		args = append(args, period.NumDate)
	}
	if period.Month != 0 {
		conditions = append(conditions, "e.month = ?")
		args = append(args, period.Month)
	}
	if period.Week != 0 {
		conditions = append(conditions, "e.week = ?")
		args = append(args, period.Week)
	}
	if period.Year != 0 {
		conditions = append(conditions, "e.year = ?")
		args = append(args, period.Year)
	}

	query := "SELECT COALESCE(SUM(e.amount), 0) AS total FROM expenses e WHERE " + strings.Join(conditions, " AND ")

	var row struct {
		Total float64 `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return 0, err
	}
	return row.Total, nil
}

func (r *PostgresRepository) SumByCategoryName(ctx context.Context, accountID, categoryName string) ([]float64, error) {
	query := "SELECT COALESCE(SUM(e.amount), 0) AS total " +
		"FROM expenses e " +
		"JOIN categories c ON c.id = e.category_id " +
		"WHERE e.account_id = ? AND c.name = ? " +
		"GROUP BY e.subcategory_id"

	var rows []struct {
		Total float64 `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).Raw(query, accountID, categoryName).Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]float64, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, row.Total)
	}
	return totals, nil
}

func (r *PostgresRepository) detailsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("expenses").
		Select(detailsSelect).
		Joins("left join users on users.id = expenses.user_id").
		Joins("left join categories on categories.id = expenses.category_id").
		Joins("left join subcategories on subcategories.id = expenses.subcategory_id")
}

// AttachCreditPayments loads the credit payment of every row that links one.
func AttachCreditPayments(ctx context.Context, db *gorm.DB, rows []expensesdomain.ExpenseDetails) error {
	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for _, row := range rows {
		if row.CreditPaymentID == nil {
			continue
		}
		if _, ok := seen[*row.CreditPaymentID]; ok {
			continue
		}
		seen[*row.CreditPaymentID] = struct{}{}
		ids = append(ids, *row.CreditPaymentID)
	}
	if len(ids) == 0 {
		return nil
	}

	var payments []creditpaymentsdomain.CreditPayment
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&payments).Error; err != nil {
		return err
	}

	byID := make(map[string]*creditpaymentsdomain.CreditPayment, len(payments))
	for i := range payments {
		byID[payments[i].ID] = &payments[i]
	}
	for i := range rows {
		if rows[i].CreditPaymentID != nil {
			rows[i].CreditPayment = byID[*rows[i].CreditPaymentID]
		}
	}
	return nil
}

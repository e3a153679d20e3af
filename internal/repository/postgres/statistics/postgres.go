package statistics

import (
	"context"

	"gorm.io/gorm"

	expensesdomain "shared-finance-go/internal/domain/expenses"
	statisticsdomain "shared-finance-go/internal/domain/statistics"
	expensesrepo "shared-finance-go/internal/repository/postgres/expenses"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindExpenses(ctx context.Context, condition statisticsdomain.Condition) ([]expensesdomain.ExpenseDetails, error) {
	var rows []expensesdomain.ExpenseDetails
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Select("expenses.*, users.name AS user_name, categories.name AS category_name, subcategories.name AS subcategory_name").
		Joins("left join users on users.id = expenses.user_id").
		Joins("left join categories on categories.id = expenses.category_id").
		Joins("left join subcategories on subcategories.id = expenses.subcategory_id").
		Where(condition.SQL, condition.Args...).
		Order("expenses.complete_date desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	if err := expensesrepo.AttachCreditPayments(ctx, r.db, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) MonthlyTotals(ctx context.Context, accountID string, sinceMillis int64) ([]statisticsdomain.MonthTotal, error) {
	query := "SELECT e.month AS month, COALESCE(SUM(e.amount), 0) AS total " +
		"FROM expenses e " +
		"WHERE e.account_id = ? AND e.complete_date >= ? " +
		"GROUP BY e.month " +
		"ORDER BY e.month"

	var rows []statisticsdomain.MonthTotal
	if err := r.db.WithContext(ctx).Raw(query, accountID, sinceMillis).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

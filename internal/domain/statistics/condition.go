package statistics

import "strings"

// BuildCondition joins every present filter with AND, always scoped to accountID.
func BuildCondition(accountID string, filter Filter) Condition {
	clauses := []string{"expenses.account_id = ?"}
	args := []any{accountID}

	add := func(clause string, arg any) {
		clauses = append(clauses, clause)
		args = append(args, arg)
	}

	if filter.MinAmount != nil {
		add("expenses.amount > ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		add("expenses.amount < ?", *filter.MaxAmount)
	}
	if len(filter.NumDates) > 0 {
		add("expenses.num_date IN ?", filter.NumDates)
	}
	if len(filter.Months) > 0 {
		add("expenses.month IN ?", filter.Months)
	}
	if len(filter.Years) > 0 {
		add("expenses.year IN ?", filter.Years)
	}
	if len(filter.DayNames) > 0 {
		add("expenses.day_name IN ?", filter.DayNames)
	}
	if len(filter.Users) > 0 {
		add("expenses.user_id IN ?", filter.Users)
	}
	if len(filter.Categories) > 0 {
		add("expenses.category_id IN ?", filter.Categories)
	}
	if len(filter.Subcategories) > 0 {
		add("expenses.subcategory_id IN ?", filter.Subcategories)
	}

	return Condition{SQL: strings.Join(clauses, " AND "), Args: args}
}

// GroupingFor picks the single aggregation key of a statistics call.
func GroupingFor(filter Filter) GroupBy {
	if len(filter.Categories) == 1 || len(filter.Subcategories) > 0 {
		return GroupBySubcategories
	}
	return GroupByCategories
}

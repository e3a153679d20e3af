package expenses

import (
	"net/http"
	"net/url"

	statisticsdomain "shared-finance-go/internal/domain/statistics"
	commonhandler "shared-finance-go/internal/transport/httpserver/handler/common"
)

func (h *Handlers) GetStatistics(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "expenses.statistics")
	if !ok {
		return
	}

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, "expenses.statistics: invalid filter", err, "user_id", userID, "account_id", accountID, "query", r.URL.RawQuery)
		return
	}

	result, err := h.Statistics.Statistics(r.Context(), accountID, filter)
	if err != nil {
		h.writeError(w, "expenses.statistics: query failed", err, "user_id", userID, "account_id", accountID)
		return
	}

	writeJSON(w, http.StatusOK, toStatisticsResponse(result))
}

func parseFilter(query url.Values) (statisticsdomain.Filter, error) {
	var filter statisticsdomain.Filter
	var err error

	if filter.MinAmount, err = commonhandler.ParseFloatParam(query.Get("min_amount")); err != nil {
		return filter, errInvalidQuery
	}
	if filter.MaxAmount, err = commonhandler.ParseFloatParam(query.Get("max_amount")); err != nil {
		return filter, errInvalidQuery
	}
	if filter.NumDates, err = commonhandler.QueryIntList(query, "num_date"); err != nil {
		return filter, errInvalidQuery
	}
	if filter.Months, err = commonhandler.QueryIntList(query, "month"); err != nil {
		return filter, errInvalidQuery
	}
	if filter.Years, err = commonhandler.QueryIntList(query, "year"); err != nil {
		return filter, errInvalidQuery
	}

	filter.DayNames = commonhandler.QueryList(query, "day_name")
	filter.Users = commonhandler.QueryList(query, "users")
	filter.Categories = commonhandler.QueryList(query, "categories")
	filter.Subcategories = commonhandler.QueryList(query, "subcategories")
	return filter, nil
}

package handler

import (
	"shared-finance-go/internal/transport/httpserver/handler/common"
	"shared-finance-go/internal/transport/httpserver/handler/expenses"
)

// Handlers groups the HTTP handlers by area.
type Handlers struct {
	Common   *common.Handlers
	Expenses *expenses.Handlers
}

func New(common *common.Handlers, expenses *expenses.Handlers) *Handlers {
	return &Handlers{
		Common:   common,
		Expenses: expenses,
	}
}

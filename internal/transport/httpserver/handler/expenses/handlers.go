package expenses

import (
	categoriesdomain "shared-finance-go/internal/domain/categories"
	creditpaymentsdomain "shared-finance-go/internal/domain/creditpayments"
	expensesdomain "shared-finance-go/internal/domain/expenses"
	statisticsdomain "shared-finance-go/internal/domain/statistics"
	"shared-finance-go/pkg/logger"
)

type Handlers struct {
	Expenses       *expensesdomain.Service
	CreditPayments *creditpaymentsdomain.Service
	Categories     *categoriesdomain.Service
	Statistics     *statisticsdomain.Service
	log            logger.Logger
}

func New(expenses *expensesdomain.Service, creditPayments *creditpaymentsdomain.Service, categories *categoriesdomain.Service, statistics *statisticsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Expenses:       expenses,
		CreditPayments: creditPayments,
		Categories:     categories,
		Statistics:     statistics,
		log:            log,
	}
}

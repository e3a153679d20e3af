package common

import (
	accountsdomain "shared-finance-go/internal/domain/accounts"
	usersdomain "shared-finance-go/internal/domain/users"
	"shared-finance-go/pkg/logger"
)

type Handlers struct {
	Users    *usersdomain.Service
	Accounts *accountsdomain.Service
	log      logger.Logger
}

func New(users *usersdomain.Service, accounts *accountsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Users:    users,
		Accounts: accounts,
		log:      log,
	}
}

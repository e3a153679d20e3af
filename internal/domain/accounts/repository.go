package accounts

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetAccount(ctx context.Context, accountID string) (*Account, error)
	GetAccountByAccessKey(ctx context.Context, accessKey string) (*Account, error)
	ListAccountsByUser(ctx context.Context, userID string) ([]Account, error)
	ListMembers(ctx context.Context, accountID string) ([]AccountMember, error)
	ListMembersWithProfiles(ctx context.Context, accountID string) ([]MemberProfile, error)
	IsMember(ctx context.Context, accountID, userID string) (bool, error)
	CountMembers(ctx context.Context, accountID string) (int64, error)
	CreateAccount(ctx context.Context, account *Account) error
	AddMember(ctx context.Context, member *AccountMember) error
	DeleteMember(ctx context.Context, accountID, userID string) error
	UpdateAdmin(ctx context.Context, accountID, userID string) error
	SetActive(ctx context.Context, accountID string, active bool) error
	IsAccessKeyTaken(ctx context.Context, accessKey string) (bool, error)
}

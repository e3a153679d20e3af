package accounts

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	accessKeyLength   = 8
	accessKeyAttempts = 10
	defaultCacheTTL   = time.Minute
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, nil, 0)
}

func NewServiceWithCache(repo Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{repo: repo, cache: cache, cacheTTL: ttl}
}

// GetAccount returns an active account.
func (s *Service) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	if account, ok := s.cache.GetByID(ctx, accountID); ok {
		return account, nil
	}

	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, ErrAccountNotFound
	}

	s.cache.SetByID(ctx, accountID, account, s.cacheTTL)
	return account, nil
}

// Authorize checks that userID belongs to the active account accountID.
func (s *Service) Authorize(ctx context.Context, accountID, userID string) (*Account, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil, ErrAccountNotFound
	}

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	member, err := s.repo.IsMember(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context, userID string) ([]Account, error) {
	return s.repo.ListAccountsByUser(ctx, userID)
}

func (s *Service) ListMembers(ctx context.Context, accountID string) ([]MemberProfile, error) {
	return s.repo.ListMembersWithProfiles(ctx, accountID)
}

func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (*Account, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidName
	}
	maxUsers := input.MaxNumUsers
	if maxUsers <= 0 {
		maxUsers = DefaultMaxNumUsers
	}

	var result Account
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		accessKey, err := generateUniqueAccessKey(ctx, tx)
		if err != nil {
			return err
		}

		account := Account{
			ID:            uuid.NewString(),
			Name:          name,
			Description:   strings.TrimSpace(input.Description),
			MaxNumUsers:   maxUsers,
			AccessKey:     accessKey,
			IsActive:      true,
			AdminUserID:   input.UserID,
			CreatorUserID: input.UserID,
		}
		if err := tx.CreateAccount(ctx, &account); err != nil {
			return err
		}

		if err := tx.AddMember(ctx, &AccountMember{AccountID: account.ID, UserID: input.UserID}); err != nil {
			return err
		}

		result = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) JoinAccount(ctx context.Context, userID, accessKey string) (*Account, error) {
	accessKey = strings.TrimSpace(accessKey)
	if accessKey == "" {
		return nil, ErrAccessKeyNotFound
	}

	var result Account
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		account, err := tx.GetAccountByAccessKey(ctx, accessKey)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return ErrAccessKeyNotFound
		}

		member, err := tx.IsMember(ctx, account.ID, userID)
		if err != nil {
			return err
		}
		if member {
			return ErrAlreadyMember
		}

		count, err := tx.CountMembers(ctx, account.ID)
		if err != nil {
			return err
		}
		if count >= int64(account.MaxNumUsers) {
			return ErrAccountFull
		}

		if err := tx.AddMember(ctx, &AccountMember{AccountID: account.ID, UserID: userID}); err != nil {
			return err
		}

		result = *account
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// LeaveAccount removes userID from the account. The first remaining member
// becomes admin when the admin leaves; an empty account is deactivated.
func (s *Service) LeaveAccount(ctx context.Context, accountID, userID string) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		account, err := tx.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}

		member, err := tx.IsMember(ctx, accountID, userID)
		if err != nil {
			return err
		}
		if !member {
			return ErrNotMember
		}

		if err := tx.DeleteMember(ctx, accountID, userID); err != nil {
			return err
		}

		remaining, err := tx.ListMembers(ctx, accountID)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return tx.SetActive(ctx, accountID, false)
		}

		if account.AdminUserID == userID {
			return tx.UpdateAdmin(ctx, accountID, remaining[0].UserID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.DeleteByID(ctx, accountID)
	return nil
}

func (s *Service) RemoveMember(ctx context.Context, accountID, actingUserID, memberUserID string) error {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if account.AdminUserID != actingUserID {
		return ErrNotAdmin
	}
	if memberUserID == account.AdminUserID {
		return ErrCannotRemoveAdmin
	}

	member, err := s.repo.IsMember(ctx, accountID, memberUserID)
	if err != nil {
		return err
	}
	if !member {
		return ErrMemberNotFound
	}

	return s.repo.DeleteMember(ctx, accountID, memberUserID)
}

// DeleteAccount deactivates the account. Financial records are kept.
func (s *Service) DeleteAccount(ctx context.Context, accountID, actingUserID string) error {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if account.AdminUserID != actingUserID {
		return ErrNotAdmin
	}

	if err := s.repo.SetActive(ctx, accountID, false); err != nil {
		return err
	}

	s.cache.DeleteByID(ctx, accountID)
	return nil
}

func generateUniqueAccessKey(ctx context.Context, repo Repository) (string, error) {
	for i := 0; i < accessKeyAttempts; i++ {
		key, err := generateAccessKey(accessKeyLength)
		if err != nil {
			return "", err
		}
		taken, err := repo.IsAccessKeyTaken(ctx, key)
		if err != nil {
			return "", err
		}
		if !taken {
			return key, nil
		}
	}
	return "", ErrAccessKeyGeneration
}

func generateAccessKey(length int) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"
	max := big.NewInt(int64(len(alphabet)))

	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}

	return builder.String(), nil
}

package users

import "context"

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// EnsureUser inserts the user unless a user with that id already exists.
	EnsureUser(ctx context.Context, user *User) error
}

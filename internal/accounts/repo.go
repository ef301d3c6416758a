package accounts

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Repo interface {
	// Create fails with ErrDuplicateAccount when the email is taken.
	Create(ctx context.Context, a Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
	// Update replaces the mutable fields of an existing account.
	Update(ctx context.Context, a Account) error
	// List returns all accounts, newest first.
	List(ctx context.Context) ([]Account, error)
}

// Package repository defines the storage contracts the services depend on.
// Implementations translate their not-found conditions into the domain
// sentinel errors so services never see storage internals.
package repository

import (
	"context"

	"github.com/finledger/accounts/pkg/domain/account"
	"github.com/finledger/accounts/pkg/domain/user"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Get returns the user with the given id, or user.ErrUserNotFound.
	Get(ctx context.Context, id uint64) (*user.User, error)
}

// AccountRepository defines the interface for account data access operations.
//
// The ForUpdate variants take a row lock for the duration of the enclosing
// unit of work, serializing concurrent mutations of the same account and of
// the number-assignment read.
type AccountRepository interface {
	// Get returns the account with the given storage id, or account.ErrAccountNotFound.
	Get(ctx context.Context, id uint64) (*account.Account, error)
	// GetByNumber returns the account with the given number, or account.ErrAccountNotFound.
	GetByNumber(ctx context.Context, number string) (*account.Account, error)
	// GetByNumberForUpdate is GetByNumber with a row lock held until the
	// unit of work completes.
	GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error)
	// ListByUser returns all accounts owned by the user, in storage order.
	ListByUser(ctx context.Context, userID uint64) ([]*account.Account, error)
	// CountByUser returns how many accounts the user owns.
	CountByUser(ctx context.Context, userID uint64) (int64, error)
	// LastForUpdate returns the most recently created account (highest
	// storage id) with a row lock, or (nil, nil) when the store is empty.
	LastForUpdate(ctx context.Context) (*account.Account, error)
	// Create persists a new account and fills in its storage id.
	Create(ctx context.Context, a *account.Account) error
	// Update persists balance and lifecycle changes to an existing account.
	Update(ctx context.Context, a *account.Account) error
}

// TransactionRepository defines the interface for ledger entry access.
// Entries are append-only; there is no update operation.
type TransactionRepository interface {
	// GetByTransactionID returns the entry with the given external id, or
	// account.ErrTransactionNotFound.
	GetByTransactionID(ctx context.Context, transactionID string) (*account.Transaction, error)
	// Create persists a new ledger entry and fills in its storage id.
	Create(ctx context.Context, t *account.Transaction) error
}

// Package mocks provides testify mocks for the repository contracts plus a
// UnitOfWork fake that runs each Do callback against itself, standing in for
// a real storage transaction.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/finledger/accounts/pkg/domain/account"
	"github.com/finledger/accounts/pkg/domain/user"
	"github.com/finledger/accounts/pkg/repository"
)

// UserRepository is a testify mock of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

// Get mocks user lookup by id.
func (m *UserRepository) Get(ctx context.Context, id uint64) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// AccountRepository is a testify mock of repository.AccountRepository.
type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) Get(ctx context.Context, id uint64) (*account.Account, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*account.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) GetByNumber(ctx context.Context, number string) (*account.Account, error) {
	args := m.Called(ctx, number)
	if a, ok := args.Get(0).(*account.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error) {
	args := m.Called(ctx, number)
	if a, ok := args.Get(0).(*account.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) ListByUser(ctx context.Context, userID uint64) ([]*account.Account, error) {
	args := m.Called(ctx, userID)
	if as, ok := args.Get(0).([]*account.Account); ok {
		return as, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AccountRepository) LastForUpdate(ctx context.Context) (*account.Account, error) {
	args := m.Called(ctx)
	if a, ok := args.Get(0).(*account.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// TransactionRepository is a testify mock of repository.TransactionRepository.
type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*account.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if t, ok := args.Get(0).(*account.Transaction); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TransactionRepository) Create(ctx context.Context, t *account.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// UnitOfWork hands out the configured repository mocks and executes each Do
// callback inline. DoErr, when set, fails Do before the callback runs.
type UnitOfWork struct {
	Users        *UserRepository
	Accounts     *AccountRepository
	Transactions *TransactionRepository
	DoErr        error
}

// NewUnitOfWork builds a UnitOfWork wired with fresh repository mocks.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		Users:        &UserRepository{},
		Accounts:     &AccountRepository{},
		Transactions: &TransactionRepository{},
	}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.DoErr != nil {
		return u.DoErr
	}
	return fn(u)
}

func (u *UnitOfWork) UserRepository() (repository.UserRepository, error) {
	return u.Users, nil
}

func (u *UnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	return u.Accounts, nil
}

func (u *UnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	return u.Transactions, nil
}

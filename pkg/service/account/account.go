// Package account provides the account registry: creation with generated
// account numbers, closure, and lookup of a user's accounts. Every operation
// runs inside a unit of work so number assignment and lifecycle changes are
// atomic against concurrent callers.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	accountdomain "github.com/finledger/accounts/pkg/domain/account"
	"github.com/finledger/accounts/pkg/dto"
	"github.com/finledger/accounts/pkg/repository"
)

const (
	// maxAccountsPerUser caps how many accounts one user may hold.
	maxAccountsPerUser = 10
	// genesisAccountNumber seeds numbering on an empty store.
	genesisAccountNumber = "1000000000"
)

// Service owns the account lifecycle.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a new Service with the provided dependencies.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateAccount opens a new account for the user with the given initial
// balance. The account number is the numeric successor of the number held by
// the most recently created account; the read locks that row so two
// concurrent creations cannot be assigned the same number.
func (s *Service) CreateAccount(ctx context.Context, userID uint64, initialBalance int64) (*dto.AccountRead, error) {
	var created *accountdomain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		owner, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		count, err := accounts.CountByUser(ctx, owner.ID)
		if err != nil {
			return err
		}
		if count >= maxAccountsPerUser {
			return accountdomain.ErrAccountLimitExceeded
		}
		number, err := s.nextAccountNumber(ctx, accounts)
		if err != nil {
			return err
		}
		a := accountdomain.New(owner.ID, number, initialBalance, time.Now().UTC())
		if err := accounts.Create(ctx, a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account created",
		"user_id", created.UserID, "account_number", created.Number)
	return toAccountRead(created), nil
}

// nextAccountNumber reads the highest-id account under a row lock and
// increments its number numerically. No zero-padding is re-applied; the
// genesis number keeps early numbers at ten digits.
func (s *Service) nextAccountNumber(ctx context.Context, accounts repository.AccountRepository) (string, error) {
	last, err := accounts.LastForUpdate(ctx)
	if err != nil {
		return "", err
	}
	if last == nil {
		return genesisAccountNumber, nil
	}
	n, err := strconv.ParseInt(last.Number, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse account number %q: %w", last.Number, err)
	}
	return strconv.FormatInt(n+1, 10), nil
}

// CloseAccount unregisters the user's account. Preconditions are checked in
// order: ownership, not already closed, balance exactly zero.
func (s *Service) CloseAccount(ctx context.Context, userID uint64, accountNumber string) (*dto.AccountRead, error) {
	var closed *accountdomain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		owner, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumberForUpdate(ctx, accountNumber)
		if err != nil {
			return err
		}
		if err := a.Close(owner.ID, time.Now().UTC()); err != nil {
			return err
		}
		if err := accounts.Update(ctx, a); err != nil {
			return err
		}
		closed = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account closed",
		"user_id", closed.UserID, "account_number", closed.Number)
	return toAccountRead(closed), nil
}

// ListAccounts returns the user's accounts in the order the store yields them.
func (s *Service) ListAccounts(ctx context.Context, userID uint64) ([]*dto.AccountRead, error) {
	var result []*dto.AccountRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		owner, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		owned, err := accounts.ListByUser(ctx, owner.ID)
		if err != nil {
			return err
		}
		result = make([]*dto.AccountRead, 0, len(owned))
		for _, a := range owned {
			result = append(result, toAccountRead(a))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func toAccountRead(a *accountdomain.Account) *dto.AccountRead {
	return &dto.AccountRead{
		UserID:         a.UserID,
		AccountNumber:  a.Number,
		Balance:        a.Balance,
		Status:         string(a.Status),
		RegisteredAt:   a.RegisteredAt,
		UnregisteredAt: a.UnregisteredAt,
	}
}

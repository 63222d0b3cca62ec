// Package transaction provides the transaction ledger: balance debits
// ("use"), full reversals ("cancel"), the durable audit record for rejected
// debits, and point lookup by external transaction id. Each operation runs
// inside a unit of work with the affected account row locked, so the balance
// mutation and its ledger entry commit together.
package transaction

import (
	"context"
	"log/slog"
	"time"

	accountdomain "github.com/finledger/accounts/pkg/domain/account"
	"github.com/finledger/accounts/pkg/dto"
	"github.com/finledger/accounts/pkg/repository"
)

// Service owns balance mutation and the ledger.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a new Service with the provided dependencies.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// UseBalance debits the account and records a SUCCESS/USE entry whose
// snapshot is the post-debit balance. Validation order: user, account,
// ownership, lifecycle state, balance sufficiency.
//
// A balance-sufficiency failure is surfaced as ErrAmountExceedsBalance; the
// caller is expected to record it via RecordFailedUse. Earlier failures get
// no ledger row, since no debit was attempted against a resolved, authorized
// account.
func (s *Service) UseBalance(ctx context.Context, userID uint64, accountNumber string, amount int64) (*dto.TransactionRead, error) {
	var entry *accountdomain.Transaction
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
		if err := a.ValidateUse(owner.ID, amount); err != nil {
			return err
		}
		if err := a.Debit(amount); err != nil {
			return err
		}
		if err := accounts.Update(ctx, a); err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entry = accountdomain.NewEntry(a.ID, accountdomain.TypeUse,
			accountdomain.ResultSuccess, amount, a.Balance, time.Now().UTC())
		return ledger.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("balance used",
		"account_number", accountNumber,
		"transaction_id", entry.TransactionID,
		"amount", amount,
		"balance_snapshot", entry.BalanceSnapshot)
	return toTransactionRead(entry, accountNumber), nil
}

// RecordFailedUse writes the durable FAIL/USE audit entry for a rejected
// debit. The snapshot is the untouched balance; amount is what was attempted.
// This is an error-handling branch itself: it is invoked after UseBalance
// already failed, and its own failure is reported, not swallowed.
func (s *Service) RecordFailedUse(ctx context.Context, accountNumber string, amount int64) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumber(ctx, accountNumber)
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entry := accountdomain.NewEntry(a.ID, accountdomain.TypeUse,
			accountdomain.ResultFail, amount, a.Balance, time.Now().UTC())
		return ledger.Create(ctx, entry)
	})
	if err != nil {
		s.logger.Error("failed to record rejected use",
			"account_number", accountNumber, "amount", amount, "error", err)
		return err
	}
	s.logger.Info("rejected use recorded",
		"account_number", accountNumber, "amount", amount)
	return nil
}

// CancelBalance fully reverses a prior debit: it credits the account and
// records a SUCCESS/CANCEL entry with its own fresh transaction id.
// Validation order: account, original transaction, account match, full
// amount match, cancel window.
//
// Repeated cancels of the same original transaction are not guarded; the
// original entry is never marked cancelled and each call re-credits.
func (s *Service) CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (*dto.TransactionRead, error) {
	var entry *accountdomain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumberForUpdate(ctx, accountNumber)
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		original, err := ledger.GetByTransactionID(ctx, transactionID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if original.AccountID != a.ID {
			return accountdomain.ErrTransactionAccountMismatch
		}
		if original.Amount != amount {
			return accountdomain.ErrCancelMustBeFull
		}
		if !original.CancellableBy(now) {
			return accountdomain.ErrTooOldToCancel
		}
		a.Credit(amount)
		if err := accounts.Update(ctx, a); err != nil {
			return err
		}
		entry = accountdomain.NewEntry(a.ID, accountdomain.TypeCancel,
			accountdomain.ResultSuccess, amount, a.Balance, now)
		return ledger.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("balance cancelled",
		"account_number", accountNumber,
		"original_transaction_id", transactionID,
		"transaction_id", entry.TransactionID,
		"amount", amount,
		"balance_snapshot", entry.BalanceSnapshot)
	return toTransactionRead(entry, accountNumber), nil
}

// QueryTransaction returns the stored entry for the given external id,
// verbatim, whatever type and result it was stored with.
func (s *Service) QueryTransaction(ctx context.Context, transactionID string) (*dto.TransactionRead, error) {
	var result *dto.TransactionRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entry, err := ledger.GetByTransactionID(ctx, transactionID)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.Get(ctx, entry.AccountID)
		if err != nil {
			return err
		}
		result = toTransactionRead(entry, a.Number)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func toTransactionRead(t *accountdomain.Transaction, accountNumber string) *dto.TransactionRead {
	return &dto.TransactionRead{
		TransactionID:   t.TransactionID,
		AccountNumber:   accountNumber,
		Type:            string(t.Type),
		Result:          string(t.Result),
		Amount:          t.Amount,
		BalanceSnapshot: t.BalanceSnapshot,
		TransactedAt:    t.TransactedAt,
	}
}

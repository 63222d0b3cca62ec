// Package account holds the ledger's core entities: the Account aggregate and
// the Transaction entries recorded against it. All balance-affecting rules
// live here; services orchestrate repositories around these methods.
package account

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound is returned when an account cannot be resolved by its number or id.
	ErrAccountNotFound = errors.New("account not found")

	// ErrOwnerMismatch is returned when a user acts on an account they do not own.
	ErrOwnerMismatch = errors.New("account owner mismatch")

	// ErrAccountLimitExceeded is returned when a user already holds the maximum number of accounts.
	ErrAccountLimitExceeded = errors.New("account limit per user exceeded")

	// ErrAlreadyClosed is returned when an operation targets an account that is already unregistered.
	ErrAlreadyClosed = errors.New("account already closed")

	// ErrBalanceNotEmpty is returned when closing an account whose balance is not zero.
	ErrBalanceNotEmpty = errors.New("balance not empty")

	// ErrAmountExceedsBalance is returned when a debit is larger than the current balance.
	ErrAmountExceedsBalance = errors.New("amount exceeds balance")

	// ErrTransactionNotFound is returned when a transaction cannot be resolved by its external id.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionAccountMismatch is returned when a cancel targets a
	// transaction that belongs to a different account.
	ErrTransactionAccountMismatch = errors.New("transaction does not belong to account")

	// ErrCancelMustBeFull is returned when a cancel amount differs from the
	// original transaction amount; partial reversals are not supported.
	ErrCancelMustBeFull = errors.New("cancel amount must match original amount")

	// ErrTooOldToCancel is returned when the original transaction is past the cancel window.
	ErrTooOldToCancel = errors.New("transaction too old to cancel")
)

// Status is the lifecycle state of an account.
type Status string

const (
	// StatusInUse marks an open account.
	StatusInUse Status = "IN_USE"
	// StatusUnregistered marks a closed account. The flip happens exactly
	// once; accounts are never physically deleted.
	StatusUnregistered Status = "UNREGISTERED"
)

// Account represents one ledger account.
//
// Invariants:
//   - Balance is never negative.
//   - Number is assigned at creation and immutable afterwards.
//   - An unregistered account has a zero balance and is never mutated again.
type Account struct {
	ID             uint64
	UserID         uint64
	Number         string
	Balance        int64
	Status         Status
	RegisteredAt   time.Time
	UnregisteredAt *time.Time
}

// New creates an open account for the given owner with the given number and
// initial balance, stamped at now.
func New(userID uint64, number string, initialBalance int64, now time.Time) *Account {
	return &Account{
		UserID:       userID,
		Number:       number,
		Balance:      initialBalance,
		Status:       StatusInUse,
		RegisteredAt: now,
	}
}

// ValidateOwner checks that the account belongs to the given user.
func (a *Account) ValidateOwner(userID uint64) error {
	if a.UserID != userID {
		return ErrOwnerMismatch
	}
	return nil
}

// ValidateUse checks all preconditions for debiting the account, in order:
// ownership, then lifecycle state, then balance sufficiency. The ordering is
// observable to callers: the balance check runs last, against a fully
// resolved and authorized account.
func (a *Account) ValidateUse(userID uint64, amount int64) error {
	if err := a.ValidateOwner(userID); err != nil {
		return err
	}
	if a.Status == StatusUnregistered {
		return ErrAlreadyClosed
	}
	if amount > a.Balance {
		return ErrAmountExceedsBalance
	}
	return nil
}

// Debit removes amount from the balance. Callers must have run ValidateUse first.
func (a *Account) Debit(amount int64) error {
	if amount > a.Balance {
		return ErrAmountExceedsBalance
	}
	a.Balance -= amount
	return nil
}

// Credit restores amount to the balance.
func (a *Account) Credit(amount int64) {
	a.Balance += amount
}

// Close unregisters the account at now. Preconditions, checked in order:
// the caller owns the account, it is still open, and the balance is zero.
func (a *Account) Close(userID uint64, now time.Time) error {
	if err := a.ValidateOwner(userID); err != nil {
		return err
	}
	if a.Status == StatusUnregistered {
		return ErrAlreadyClosed
	}
	if a.Balance > 0 {
		return ErrBalanceNotEmpty
	}
	a.Status = StatusUnregistered
	a.UnregisteredAt = &now
	return nil
}

package account

import (
	"time"

	"github.com/google/uuid"
)

// CancelWindow is how long after a debit a reversal is still accepted.
const CancelWindow = time.Hour * 24 * 365

// Type distinguishes debits from reversals.
type Type string

const (
	// TypeUse is a debit against the account balance.
	TypeUse Type = "USE"
	// TypeCancel is a full reversal of a prior debit.
	TypeCancel Type = "CANCEL"
)

// Result records whether an attempt took effect.
type Result string

const (
	// ResultSuccess marks an entry whose balance mutation was applied.
	ResultSuccess Result = "SUCCESS"
	// ResultFail marks a rejected attempt kept for audit.
	ResultFail Result = "FAIL"
)

// Transaction is one immutable ledger entry, successful or not. A CANCEL is
// always a new entry; the original USE entry is never mutated.
//
// BalanceSnapshot carries the account balance immediately after the entry
// took effect, or the untouched balance for a failed attempt. Amount always
// records what was attempted.
type Transaction struct {
	ID              uint64
	AccountID       uint64
	TransactionID   string
	Type            Type
	Result          Result
	Amount          int64
	BalanceSnapshot int64
	TransactedAt    time.Time
}

// NewEntry creates a ledger entry with a freshly generated external id.
// snapshot must already reflect the outcome: post-mutation balance for a
// success, the unchanged balance for a failure.
func NewEntry(accountID uint64, txType Type, result Result, amount, snapshot int64, now time.Time) *Transaction {
	return &Transaction{
		AccountID:       accountID,
		TransactionID:   uuid.NewString(),
		Type:            txType,
		Result:          result,
		Amount:          amount,
		BalanceSnapshot: snapshot,
		TransactedAt:    now,
	}
}

// CancellableBy reports whether the entry can still be reversed at now.
func (t *Transaction) CancellableBy(now time.Time) bool {
	return now.Sub(t.TransactedAt) <= CancelWindow
}

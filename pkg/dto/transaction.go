package dto

import "time"

// TransactionRead is the public projection of a ledger entry.
type TransactionRead struct {
	TransactionID   string    `json:"transaction_id"`
	AccountNumber   string    `json:"account_number"`
	Type            string    `json:"transaction_type"`
	Result          string    `json:"transaction_result"`
	Amount          int64     `json:"amount"`
	BalanceSnapshot int64     `json:"balance_snapshot"`
	TransactedAt    time.Time `json:"transacted_at"`
}

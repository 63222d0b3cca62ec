// Package transaction implements the gorm-backed, append-only ledger store.
package transaction

import "time"

// Transaction represents a ledger entry record in the database. Rows are
// written once and never updated.
type Transaction struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement"`
	AccountID       uint64 `gorm:"index;not null"`
	TransactionID   string `gorm:"uniqueIndex;size:36;not null"`
	Type            string `gorm:"size:16;not null"`
	Result          string `gorm:"size:16;not null"`
	Amount          int64  `gorm:"not null"`
	BalanceSnapshot int64  `gorm:"not null"`
	TransactedAt    time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

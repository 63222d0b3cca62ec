// Package account implements the gorm-backed account store.
package account

import "time"

// Account represents an account record in the database. The auto-increment
// primary key doubles as the creation order the number generator reads.
type Account struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	UserID         uint64 `gorm:"index;not null"`
	Number         string `gorm:"uniqueIndex;size:10;not null"`
	Balance        int64  `gorm:"not null"`
	Status         string `gorm:"size:16;not null"`
	RegisteredAt   time.Time
	UnregisteredAt *time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

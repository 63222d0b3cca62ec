// Package user implements the gorm-backed user store.
package user

import "time"

// User represents a user record in the database.
type User struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "account_users"
}

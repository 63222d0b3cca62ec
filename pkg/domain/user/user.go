// Package user holds the user identity the ledger references. Users are
// owned externally; the ledger only resolves them by id.
package user

import (
	"errors"
	"time"
)

// ErrUserNotFound is returned when a user cannot be found in the repository.
var ErrUserNotFound = errors.New("user not found")

// User represents a user in the system.
type User struct {
	ID        uint64
	Name      string
	CreatedAt time.Time
}

// Package dto defines the read projections the services hand back to their
// callers. Storage identifiers stay inside the repositories; projections
// expose account numbers and external transaction ids only.
package dto

import "time"

// AccountRead is the public projection of an account.
type AccountRead struct {
	UserID         uint64     `json:"user_id"`
	AccountNumber  string     `json:"account_number"`
	Balance        int64      `json:"balance"`
	Status         string     `json:"status"`
	RegisteredAt   time.Time  `json:"registered_at"`
	UnregisteredAt *time.Time `json:"unregistered_at,omitempty"`
}

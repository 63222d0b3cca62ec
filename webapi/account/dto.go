package account

import (
	"time"

	"github.com/finledger/accounts/pkg/dto"
)

// CreateAccountRequest is the request body for opening a new account.
type CreateAccountRequest struct {
	UserID         uint64 `json:"user_id" validate:"required,gt=0"`
	InitialBalance int64  `json:"initial_balance" validate:"gte=0"`
}

// CreateAccountResponse echoes the created account's public projection.
type CreateAccountResponse struct {
	UserID        uint64    `json:"user_id"`
	AccountNumber string    `json:"account_number"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// CloseAccountRequest is the request body for closing an account.
type CloseAccountRequest struct {
	UserID        uint64 `json:"user_id" validate:"required,gt=0"`
	AccountNumber string `json:"account_number" validate:"required,min=10,numeric"`
}

// CloseAccountResponse echoes the closed account's public projection.
type CloseAccountResponse struct {
	UserID         uint64     `json:"user_id"`
	AccountNumber  string     `json:"account_number"`
	UnregisteredAt *time.Time `json:"unregistered_at"`
}

// AccountInfo is one element of the account listing response.
type AccountInfo struct {
	AccountNumber string `json:"account_number"`
	Balance       int64  `json:"balance"`
}

func toCreateResponse(a *dto.AccountRead) CreateAccountResponse {
	return CreateAccountResponse{
		UserID:        a.UserID,
		AccountNumber: a.AccountNumber,
		RegisteredAt:  a.RegisteredAt,
	}
}

func toCloseResponse(a *dto.AccountRead) CloseAccountResponse {
	return CloseAccountResponse{
		UserID:         a.UserID,
		AccountNumber:  a.AccountNumber,
		UnregisteredAt: a.UnregisteredAt,
	}
}

func toAccountInfos(accounts []*dto.AccountRead) []AccountInfo {
	infos := make([]AccountInfo, 0, len(accounts))
	for _, a := range accounts {
		infos = append(infos, AccountInfo{
			AccountNumber: a.AccountNumber,
			Balance:       a.Balance,
		})
	}
	return infos
}

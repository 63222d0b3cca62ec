package transaction

import (
	"time"

	"github.com/finledger/accounts/pkg/dto"
)

// UseBalanceRequest is the request body for debiting an account.
type UseBalanceRequest struct {
	UserID        uint64 `json:"user_id" validate:"required,gt=0"`
	AccountNumber string `json:"account_number" validate:"required,min=10,numeric"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
}

// CancelBalanceRequest is the request body for reversing a prior debit.
type CancelBalanceRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required,min=10,numeric"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
}

// TransactionResponse is the response body for use and cancel operations.
type TransactionResponse struct {
	AccountNumber     string    `json:"account_number"`
	TransactionResult string    `json:"transaction_result"`
	TransactionID     string    `json:"transaction_id"`
	Amount            int64     `json:"amount"`
	TransactedAt      time.Time `json:"transacted_at"`
}

// QueryTransactionResponse is the response body for transaction lookup; it
// additionally carries the stored transaction type.
type QueryTransactionResponse struct {
	AccountNumber     string    `json:"account_number"`
	TransactionType   string    `json:"transaction_type"`
	TransactionResult string    `json:"transaction_result"`
	TransactionID     string    `json:"transaction_id"`
	Amount            int64     `json:"amount"`
	TransactedAt      time.Time `json:"transacted_at"`
}

func toTransactionResponse(t *dto.TransactionRead) TransactionResponse {
	return TransactionResponse{
		AccountNumber:     t.AccountNumber,
		TransactionResult: t.Result,
		TransactionID:     t.TransactionID,
		Amount:            t.Amount,
		TransactedAt:      t.TransactedAt,
	}
}

func toQueryResponse(t *dto.TransactionRead) QueryTransactionResponse {
	return QueryTransactionResponse{
		AccountNumber:     t.AccountNumber,
		TransactionType:   t.Type,
		TransactionResult: t.Result,
		TransactionID:     t.TransactionID,
		Amount:            t.Amount,
		TransactedAt:      t.TransactedAt,
	}
}

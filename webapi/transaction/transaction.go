// Package transaction exposes the transaction ledger over HTTP.
package transaction

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	accountdomain "github.com/finledger/accounts/pkg/domain/account"
	transactionsvc "github.com/finledger/accounts/pkg/service/transaction"
	"github.com/finledger/accounts/webapi/common"
)

// Routes registers HTTP routes for balance mutation and transaction lookup.
//
//   - POST /transaction/use            : debit an account.
//   - POST /transaction/cancel         : fully reverse a prior debit.
//   - GET  /transaction/:transactionId : look up an entry by external id.
func Routes(app *fiber.App, transactionSvc *transactionsvc.Service) {
	app.Post("/transaction/use", UseBalance(transactionSvc))
	app.Post("/transaction/cancel", CancelBalance(transactionSvc))
	app.Get("/transaction/:transactionId", QueryTransaction(transactionSvc))
}

// UseBalance returns a handler that debits an account. A debit rejected for
// insufficient balance is still recorded as a FAIL entry before the error
// response goes out; earlier validation failures are not, since no debit was
// attempted against a resolved, authorized account.
func UseBalance(transactionSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UseBalanceRequest](c)
		if input == nil {
			return err
		}
		t, err := transactionSvc.UseBalance(c.Context(), input.UserID, input.AccountNumber, input.Amount)
		if err != nil {
			log.Errorf("failed to use balance on %s: %v", input.AccountNumber, err)
			if errors.Is(err, accountdomain.ErrAmountExceedsBalance) {
				if auditErr := transactionSvc.RecordFailedUse(c.Context(), input.AccountNumber, input.Amount); auditErr != nil {
					log.Errorf("failed to record rejected use on %s: %v", input.AccountNumber, auditErr)
				}
			}
			return common.ProblemDetailsJSON(c, "Failed to use balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance used", toTransactionResponse(t))
	}
}

// CancelBalance returns a handler that fully reverses a prior debit.
func CancelBalance(transactionSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CancelBalanceRequest](c)
		if input == nil {
			return err
		}
		t, err := transactionSvc.CancelBalance(c.Context(), input.TransactionID, input.AccountNumber, input.Amount)
		if err != nil {
			log.Errorf("failed to cancel transaction %s: %v", input.TransactionID, err)
			return common.ProblemDetailsJSON(c, "Failed to cancel balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance cancelled", toTransactionResponse(t))
	}
}

// QueryTransaction returns a handler that looks up a ledger entry by its
// external transaction id.
func QueryTransaction(transactionSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		transactionID := c.Params("transactionId")
		t, err := transactionSvc.QueryTransaction(c.Context(), transactionID)
		if err != nil {
			log.Errorf("failed to query transaction %s: %v", transactionID, err)
			return common.ProblemDetailsJSON(c, "Failed to query transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction found", toQueryResponse(t))
	}
}

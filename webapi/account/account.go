// Package account exposes the account registry over HTTP.
package account

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	accountsvc "github.com/finledger/accounts/pkg/service/account"
	"github.com/finledger/accounts/webapi/common"
)

// Routes registers HTTP routes for account lifecycle operations.
//
//   - POST   /account           : open a new account for a user.
//   - DELETE /account           : close a user's account.
//   - GET    /account?user_id=N : list a user's accounts.
func Routes(app *fiber.App, accountSvc *accountsvc.Service) {
	app.Post("/account", CreateAccount(accountSvc))
	app.Delete("/account", CloseAccount(accountSvc))
	app.Get("/account", ListAccounts(accountSvc))
}

// CreateAccount returns a handler that opens a new account with a generated
// account number.
func CreateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.CreateAccount(c.Context(), input.UserID, input.InitialBalance)
		if err != nil {
			log.Errorf("failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", toCreateResponse(a))
	}
}

// CloseAccount returns a handler that unregisters an account.
func CloseAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CloseAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.CloseAccount(c.Context(), input.UserID, input.AccountNumber)
		if err != nil {
			log.Errorf("failed to close account %s: %v", input.AccountNumber, err)
			return common.ProblemDetailsJSON(c, "Failed to close account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account closed", toCloseResponse(a))
	}
}

// ListAccounts returns a handler that lists a user's accounts with their
// current balances.
func ListAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
		if err != nil || userID == 0 {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid user id", "user_id must be a positive integer")
		}
		accounts, err := accountSvc.ListAccounts(c.Context(), userID)
		if err != nil {
			log.Errorf("failed to list accounts for user %d: %v", userID, err)
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts listed", toAccountInfos(accounts))
	}
}

// Package webapi assembles the Fiber application from the service layer.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	accountsvc "github.com/finledger/accounts/pkg/service/account"
	transactionsvc "github.com/finledger/accounts/pkg/service/transaction"
	"github.com/finledger/accounts/webapi/account"
	"github.com/finledger/accounts/webapi/common"
	"github.com/finledger/accounts/webapi/transaction"
)

// New builds the Fiber app with middleware and all routes registered.
func New(accountSvc *accountsvc.Service, transactionSvc *transactionsvc.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "accounts",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	account.Routes(app, accountSvc)
	transaction.Routes(app, transactionSvc)

	return app
}

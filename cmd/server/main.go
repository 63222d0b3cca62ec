package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"

	"github.com/finledger/accounts/infra"
	"github.com/finledger/accounts/pkg/config"
	accountsvc "github.com/finledger/accounts/pkg/service/account"
	transactionsvc "github.com/finledger/accounts/pkg/service/transaction"
	"github.com/finledger/accounts/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	uow := infra.NewUoW(db)
	accountSvc := accountsvc.NewService(uow, logger)
	transactionSvc := transactionsvc.NewService(uow, logger)

	app := webapi.New(accountSvc, transactionSvc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}

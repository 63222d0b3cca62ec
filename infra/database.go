// Package infra wires the Postgres-backed storage: the gorm connection, the
// transactional unit of work, and schema migration.
package infra

import (
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	accountrepo "github.com/finledger/accounts/infra/repository/account"
	transactionrepo "github.com/finledger/accounts/infra/repository/transaction"
	userrepo "github.com/finledger/accounts/infra/repository/user"
	"github.com/finledger/accounts/pkg/config"
)

// NewDBConnection opens a pooled gorm connection to Postgres. Query logging
// is enabled in development only.
func NewDBConnection(cfg config.DBConfig, appEnv string) (*gorm.DB, error) {
	if cfg.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return db, nil
}

// Migrate creates or updates the schema for the three stores.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.User{},
		&accountrepo.Account{},
		&transactionrepo.Transaction{},
	)
}

package infra

import (
	"context"

	"gorm.io/gorm"

	accountrepo "github.com/finledger/accounts/infra/repository/account"
	transactionrepo "github.com/finledger/accounts/infra/repository/transaction"
	userrepo "github.com/finledger/accounts/infra/repository/user"
	"github.com/finledger/accounts/pkg/repository"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do share the transaction
// session, so row locks taken by the ForUpdate reads are held until commit
// or rollback.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW over the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside one database transaction. fn receives a UoW bound to
// that transaction; an error from fn rolls everything back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the base connection otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// UserRepository returns the user store bound to the current session.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return userrepo.New(u.session()), nil
}

// AccountRepository returns the account store bound to the current session.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return accountrepo.New(u.session()), nil
}

// TransactionRepository returns the ledger store bound to the current session.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return transactionrepo.New(u.session()), nil
}

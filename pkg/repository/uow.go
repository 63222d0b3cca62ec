package repository

import "context"

// UnitOfWork is the transaction boundary for every registry and ledger
// operation. Repositories obtained inside Do share one storage transaction,
// so a balance mutation and its paired ledger entry commit or roll back
// together and a concurrent caller never observes a half-applied operation.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork passed
	// to fn hands out repositories bound to that transaction. If fn returns
	// an error the transaction is rolled back and the error is returned.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// UserRepository returns the user store bound to the current session.
	UserRepository() (UserRepository, error)
	// AccountRepository returns the account store bound to the current session.
	AccountRepository() (AccountRepository, error)
	// TransactionRepository returns the ledger store bound to the current session.
	TransactionRepository() (TransactionRepository, error)
}

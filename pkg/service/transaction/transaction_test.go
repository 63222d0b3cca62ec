package transaction_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finledger/accounts/internal/fixtures/mocks"
	accountdomain "github.com/finledger/accounts/pkg/domain/account"
	"github.com/finledger/accounts/pkg/domain/user"
	transactionsvc "github.com/finledger/accounts/pkg/service/transaction"
)

func newService(uow *mocks.UnitOfWork) *transactionsvc.Service {
	return transactionsvc.NewService(uow, slog.Default())
}

func openAccount(id, userID uint64, number string, balance int64) *accountdomain.Account {
	return &accountdomain.Account{
		ID:           id,
		UserID:       userID,
		Number:       number,
		Balance:      balance,
		Status:       accountdomain.StatusInUse,
		RegisteredAt: time.Now().UTC().Add(-time.Hour),
	}
}

func TestUseBalance_Success(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	acct := openAccount(3, 1, "1000000000", 10000)
	uow.Users.On("Get", mock.Anything, uint64(1)).
		Return(&user.User{ID: 1, Name: "pobi"}, nil)
	uow.Accounts.On("GetByNumberForUpdate", mock.Anything, "1000000000").Return(acct, nil)
	uow.Accounts.On("Update", mock.Anything, acct).Return(nil)

	var saved *accountdomain.Transaction
	uow.Transactions.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*accountdomain.Transaction)
		}).
		Return(nil)

	got, err := newService(uow).UseBalance(context.Background(), 1, "1000000000", 200)
	require.NoError(t, err)

	assert.Equal(t, int64(9800), acct.Balance)
	require.NotNil(t, saved)
	assert.Equal(t, accountdomain.TypeUse, saved.Type)
	assert.Equal(t, accountdomain.ResultSuccess, saved.Result)
	assert.Equal(t, int64(200), saved.Amount)
	assert.Equal(t, int64(9800), saved.BalanceSnapshot)
	assert.NotEmpty(t, saved.TransactionID)

	assert.Equal(t, "1000000000", got.AccountNumber)
	assert.Equal(t, "USE", got.Type)
	assert.Equal(t, "SUCCESS", got.Result)
	assert.Equal(t, int64(200), got.Amount)
	assert.Equal(t, int64(9800), got.BalanceSnapshot)
	uow.Transactions.AssertNumberOfCalls(t, "Create", 1)
}

func TestUseBalance_UserNotFound(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	uow.Users.On("Get", mock.Anything, uint64(1)).Return(nil, user.ErrUserNotFound)

	_, err := newService(uow).UseBalance(context.Background(), 1, "1000000000", 1000)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	uow.Transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUseBalance_AccountNotFound(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	uow.Users.On("Get", mock.Anything, uint64(1)).
		Return(&user.User{ID: 1, Name: "pobi"}, nil)
	uow.Accounts.On("GetByNumberForUpdate", mock.Anything, "1000000000").
		Return(nil, accountdomain.ErrAccountNotFound)

	_, err := newService(uow).UseBalance(context.Background(), 1, "1000000000", 1000)
	assert.ErrorIs(t, err, accountdomain.ErrAccountNotFound)
}

func TestUseBalance_OwnerMismatch(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	uow.Users.On("Get", mock.Anything, uint64(1)).
		Return(&user.User{ID: 1, Name: "pobi"}, nil)
	uow.Accounts.On("GetByNumberForUpdate", mock.Anything, "1000000000").
		Return(openAccount(3, 13, "1000000000", 0), nil)

	_, err := newService(uow).UseBalance(context.Background(), 1, "1000000000", 1000)
	assert.ErrorIs(t, err, accountdomain.ErrOwnerMismatch)
	uow.Accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUseBalance_AccountAlreadyClosed(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	acct := openAccount(3, 1, "1000000000", 0)
	acct.Status = accountdomain.StatusUnregistered
	uow.Users.On("Get", mock.Anything, uint64(1)).
		Return(&user.User{ID: 1, Name: "pobi"}, nil)
	uow.Accounts.On("GetByNumberForUpdate", mock.Anything, "1000000000").Return(acct, nil)

	_, err := newService(uow).UseBalance(context.Background(), 1, "1000000000", 1000)
	assert.ErrorIs(t, err, accountdomain.ErrAlreadyClosed)
}

func TestUseBalance_AmountExceedsBalance(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	acct := openAccount(3, 1, "1000000000", 100)
	uow.Users.On("Get", mock.Anything, uint64(1)).
		Return(&user.User{ID: 1, Name: "pobi"}, nil)
	uow.Accounts.On("GetByNumberForUpdate", mock.Anything, "1000000000").Return(acct, nil)

	_, err := newService(uow).UseBalance(context.Background(), 1, "1000000000", 1000)
	assert.ErrorIs(t, err, accountdomain.ErrAmountExceedsBalance)
	assert.Equal(t, int64(100), acct.Balance)
	uow.Accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.Transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordFailedUse_WritesFailEntryWithUnchangedSnapshot(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	uow.Accounts.On("GetByNumber", mock.Anything, "1000000000").
		Return(openAccount(3, 1, "1000000000", 100), nil)

	var saved *accountdomain.Transaction
	uow.Transactions.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*accountdomain.Transaction)
		}).
		Return(nil)

	err := newService(uow).RecordFailedUse(context.Background(), "1000000000", 1000)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, accountdomain.TypeUse, saved.Type)
	assert.Equal(t, accountdomain.ResultFail, saved.Result)
	assert.Equal(t, int64(1000), saved.Amount)
	assert.Equal(t, int64(100), saved.BalanceSnapshot)
	uow.Transactions.AssertNumberOfCalls(t, "Create", 1)
}

func TestRecordFailedUse_AccountNotFound(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	uow.Accounts.On("GetByNumber", mock.Anything, "1000000000").
		Return(nil, accountdomain.ErrAccountNotFound)

	err := newService(uow).RecordFailedUse(context.Background(), "1000000000", 1000)
	assert.ErrorIs(t, err, accountdomain.ErrAccountNotFound)
}

func TestCancelBalance_Success(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	acct := openAccount(3, 1, "1000000000", 9800)
	uow.Accounts.On("GetByNumberForUpdate", mock.Anything, "1000000000").Return(acct, nil)
	uow.Accounts.On("Update", mock.Anything, acct).Return(nil)
	uow.Transactions.On("GetByTransactionID", mock.Anything, "txid").
		Return(&accountdomain.Transaction{
			ID:              8,
			AccountID:       3,
			TransactionID:   "txid",
			Type:            accountdomain.TypeUse,
			Result:          accountdomain.ResultSuccess,
			Amount:          200,
			BalanceSnapshot: 9800,
			TransactedAt:    time.Now().UTC().Add(-time.Hour),
		}, nil)

	var saved *accountdomain.Transaction
	uow.Transactions.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*accountdomain.Transaction)
		}).
		Return(nil)

	got, err := newService(uow).CancelBalance(context.Background(), "txid", "1000000000", 200)
	require.NoError(t, err)

	assert.Equal(t, int64(10000), acct.Balance)
	require.NotNil(t, saved)
	assert.Equal(t, accountdomain.TypeCancel, saved.Type)
	assert.Equal(t, accountdomain.ResultSuccess, saved.Result)
	assert.Equal(t, int64(10000), saved.BalanceSnapshot)
	assert.NotEqual(t, "txid", saved.TransactionID)
	assert.Equal(t, "CANCEL", got.Type)
	assert.Equal(t, int64(10000), got.BalanceSnapshot)
}

func TestCancelBalance_TransactionNotFound(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	uow.Accounts.On("GetByNumberForUpdate", mock.Anything, "1000000000").
		Return(openAccount(3, 1, "1000000000", 100), nil)
	uow.Transactions.On("GetByTransactionID", mock.Anything, "missing").
		Return(nil, accountdomain.ErrTransactionNotFound)

	_, err := newService(uow).CancelBalance(context.Background(), "missing", "1000000000", 200)
	assert.ErrorIs(t, err, accountdomain.ErrTransactionNotFound)
}

func TestCancelBalance_TransactionAccountMismatch(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	uow.Accounts.On("GetByNumberForUpdate", mock.Anything, "1000000000").
		Return(openAccount(3, 1, "1000000000", 100), nil)
	uow.Transactions.On("GetByTransactionID", mock.Anything, "txid").
		Return(&accountdomain.Transaction{
			AccountID:    99,
			Amount:       200,
			TransactedAt: time.Now().UTC(),
		}, nil)

	_, err := newService(uow).CancelBalance(context.Background(), "txid", "1000000000", 200)
	assert.ErrorIs(t, err, accountdomain.ErrTransactionAccountMismatch)
	uow.Accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelBalance_PartialCancelRefused(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	uow.Accounts.On("GetByNumberForUpdate", mock.Anything, "1000000000").
		Return(openAccount(3, 1, "1000000000", 100), nil)
	uow.Transactions.On("GetByTransactionID", mock.Anything, "txid").
		Return(&accountdomain.Transaction{
			AccountID:    3,
			Amount:       200,
			TransactedAt: time.Now().UTC(),
		}, nil)

	_, err := newService(uow).CancelBalance(context.Background(), "txid", "1000000000", 100)
	assert.ErrorIs(t, err, accountdomain.ErrCancelMustBeFull)
}

func TestCancelBalance_TooOld(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	uow.Accounts.On("GetByNumberForUpdate", mock.Anything, "1000000000").
		Return(openAccount(3, 1, "1000000000", 100), nil)
	uow.Transactions.On("GetByTransactionID", mock.Anything, "txid").
		Return(&accountdomain.Transaction{
			AccountID:    3,
			Amount:       200,
			TransactedAt: time.Now().UTC().Add(-accountdomain.CancelWindow - 24*time.Hour),
		}, nil)

	_, err := newService(uow).CancelBalance(context.Background(), "txid", "1000000000", 200)
	assert.ErrorIs(t, err, accountdomain.ErrTooOldToCancel)
	uow.Transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Reversals are not idempotent: the original entry is looked up afresh each
// call and never marked cancelled, so a second cancel re-credits.
func TestCancelBalance_RepeatedCancelRecreditsEachTime(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	acct := openAccount(3, 1, "1000000000", 9800)
	uow.Accounts.On("GetByNumberForUpdate", mock.Anything, "1000000000").Return(acct, nil)
	uow.Accounts.On("Update", mock.Anything, acct).Return(nil)
	uow.Transactions.On("GetByTransactionID", mock.Anything, "txid").
		Return(&accountdomain.Transaction{
			AccountID:    3,
			Amount:       200,
			TransactedAt: time.Now().UTC().Add(-time.Hour),
		}, nil)
	uow.Transactions.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newService(uow)
	_, err := svc.CancelBalance(context.Background(), "txid", "1000000000", 200)
	require.NoError(t, err)
	_, err = svc.CancelBalance(context.Background(), "txid", "1000000000", 200)
	require.NoError(t, err)
	assert.Equal(t, int64(10200), acct.Balance)
}

func TestQueryTransaction_ReturnsStoredEntryVerbatim(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	transactedAt := time.Now().UTC().Add(-time.Minute)
	uow.Transactions.On("GetByTransactionID", mock.Anything, "txid").
		Return(&accountdomain.Transaction{
			ID:              8,
			AccountID:       3,
			TransactionID:   "txid",
			Type:            accountdomain.TypeUse,
			Result:          accountdomain.ResultFail,
			Amount:          1000,
			BalanceSnapshot: 100,
			TransactedAt:    transactedAt,
		}, nil)
	uow.Accounts.On("Get", mock.Anything, uint64(3)).
		Return(openAccount(3, 1, "1000000000", 100), nil)

	got, err := newService(uow).QueryTransaction(context.Background(), "txid")
	require.NoError(t, err)
	assert.Equal(t, "txid", got.TransactionID)
	assert.Equal(t, "1000000000", got.AccountNumber)
	assert.Equal(t, "USE", got.Type)
	assert.Equal(t, "FAIL", got.Result)
	assert.Equal(t, int64(1000), got.Amount)
	assert.Equal(t, int64(100), got.BalanceSnapshot)
	assert.Equal(t, transactedAt, got.TransactedAt)
}

func TestQueryTransaction_NotFound(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	uow.Transactions.On("GetByTransactionID", mock.Anything, "missing").
		Return(nil, accountdomain.ErrTransactionNotFound)

	_, err := newService(uow).QueryTransaction(context.Background(), "missing")
	assert.ErrorIs(t, err, accountdomain.ErrTransactionNotFound)
}

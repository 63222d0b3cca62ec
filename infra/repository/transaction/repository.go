package transaction

import (
	"context"
	"errors"

	"gorm.io/gorm"

	accountdomain "github.com/finledger/accounts/pkg/domain/account"
	"github.com/finledger/accounts/pkg/repository"
)

type transactionRepository struct {
	db *gorm.DB
}

// New creates a ledger repository using the provided *gorm.DB session.
func New(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// GetByTransactionID implements repository.TransactionRepository.
func (r *transactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*accountdomain.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accountdomain.ErrTransactionNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

// Create implements repository.TransactionRepository.
func (r *transactionRepository) Create(ctx context.Context, t *accountdomain.Transaction) error {
	m := mapDomainToModel(t)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	t.ID = m.ID
	return nil
}

func mapDomainToModel(t *accountdomain.Transaction) *Transaction {
	return &Transaction{
		ID:              t.ID,
		AccountID:       t.AccountID,
		TransactionID:   t.TransactionID,
		Type:            string(t.Type),
		Result:          string(t.Result),
		Amount:          t.Amount,
		BalanceSnapshot: t.BalanceSnapshot,
		TransactedAt:    t.TransactedAt,
	}
}

func mapModelToDomain(m *Transaction) *accountdomain.Transaction {
	return &accountdomain.Transaction{
		ID:              m.ID,
		AccountID:       m.AccountID,
		TransactionID:   m.TransactionID,
		Type:            accountdomain.Type(m.Type),
		Result:          accountdomain.Result(m.Result),
		Amount:          m.Amount,
		BalanceSnapshot: m.BalanceSnapshot,
		TransactedAt:    m.TransactedAt,
	}
}

package account

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountdomain "github.com/finledger/accounts/pkg/domain/account"
	"github.com/finledger/accounts/pkg/repository"
)

type accountRepository struct {
	db *gorm.DB
}

// New creates an account repository using the provided *gorm.DB session.
func New(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Get implements repository.AccountRepository.
func (r *accountRepository) Get(ctx context.Context, id uint64) (*accountdomain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return mapModelToDomain(&m), nil
}

// GetByNumber implements repository.AccountRepository.
func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*accountdomain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "number = ?", number).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return mapModelToDomain(&m), nil
}

// GetByNumberForUpdate implements repository.AccountRepository. The row lock
// is held until the enclosing transaction completes.
func (r *accountRepository) GetByNumberForUpdate(ctx context.Context, number string) (*accountdomain.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "number = ?", number).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return mapModelToDomain(&m), nil
}

// ListByUser implements repository.AccountRepository.
func (r *accountRepository) ListByUser(ctx context.Context, userID uint64) ([]*accountdomain.Account, error) {
	var ms []Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&ms).Error; err != nil {
		return nil, err
	}
	result := make([]*accountdomain.Account, 0, len(ms))
	for i := range ms {
		result = append(result, mapModelToDomain(&ms[i]))
	}
	return result, nil
}

// CountByUser implements repository.AccountRepository.
func (r *accountRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// LastForUpdate implements repository.AccountRepository. It returns
// (nil, nil) on an empty store; locking the highest-id row serializes
// concurrent number assignment.
func (r *accountRepository) LastForUpdate(ctx context.Context) (*accountdomain.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

// Create implements repository.AccountRepository.
func (r *accountRepository) Create(ctx context.Context, a *accountdomain.Account) error {
	m := mapDomainToModel(a)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	a.ID = m.ID
	return nil
}

// Update implements repository.AccountRepository.
func (r *accountRepository) Update(ctx context.Context, a *accountdomain.Account) error {
	return r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", a.ID).Updates(map[string]any{
		"balance":         a.Balance,
		"status":          string(a.Status),
		"unregistered_at": a.UnregisteredAt,
	}).Error
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return accountdomain.ErrAccountNotFound
	}
	return err
}

func mapDomainToModel(a *accountdomain.Account) *Account {
	return &Account{
		ID:             a.ID,
		UserID:         a.UserID,
		Number:         a.Number,
		Balance:        a.Balance,
		Status:         string(a.Status),
		RegisteredAt:   a.RegisteredAt,
		UnregisteredAt: a.UnregisteredAt,
	}
}

func mapModelToDomain(m *Account) *accountdomain.Account {
	return &accountdomain.Account{
		ID:             m.ID,
		UserID:         m.UserID,
		Number:         m.Number,
		Balance:        m.Balance,
		Status:         accountdomain.Status(m.Status),
		RegisteredAt:   m.RegisteredAt,
		UnregisteredAt: m.UnregisteredAt,
	}
}

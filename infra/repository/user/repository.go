package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	userdomain "github.com/finledger/accounts/pkg/domain/user"
	"github.com/finledger/accounts/pkg/repository"
)

type userRepository struct {
	db *gorm.DB
}

// New creates a user repository using the provided *gorm.DB session.
func New(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Get implements repository.UserRepository.
func (r *userRepository) Get(ctx context.Context, id uint64) (*userdomain.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func mapModelToDomain(m *User) *userdomain.User {
	return &userdomain.User{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

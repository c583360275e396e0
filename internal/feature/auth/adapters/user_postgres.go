// Package adapters provides the repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rishikesh-suvarna/keyzy/internal/feature/auth/domain/entity"
	"github.com/rishikesh-suvarna/keyzy/internal/feature/auth/usecase"
)

// userPostgres is the gorm-backed implementation of UserRepository.
type userPostgres struct {
	db *gorm.DB
}

// Compile-time check that userPostgres implements UserRepository.
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres creates a new userPostgres over the given gorm connection.
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create inserts the user. A duplicate subject surfaces as
// usecase.ErrSubjectAlreadyExists regardless of backing engine.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return usecase.ErrSubjectAlreadyExists
		}
		return err
	}
	return nil
}

// FindBySubject retrieves a user by external subject identifier.
func (r *userPostgres) FindBySubject(ctx context.Context, subjectID string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by internal id.
func (r *userPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

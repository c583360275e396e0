// Package adapters provides the repository implementations for the vault feature.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rishikesh-suvarna/keyzy/internal/feature/vault/domain/entity"
	"github.com/rishikesh-suvarna/keyzy/internal/feature/vault/usecase"
)

// credentialPostgres is the gorm-backed implementation of
// CredentialRepository. Every statement carries the owner in its WHERE
// clause, so a record belonging to another user behaves exactly like a
// missing one.
type credentialPostgres struct {
	db *gorm.DB
}

// Compile-time check that credentialPostgres implements CredentialRepository.
var _ usecase.CredentialRepository = (*credentialPostgres)(nil)

// NewCredentialPostgres creates a new credentialPostgres over the given
// gorm connection.
func NewCredentialPostgres(db *gorm.DB) *credentialPostgres {
	return &credentialPostgres{db: db}
}

// Create inserts the record. The id is assigned in the entity's
// BeforeCreate hook; created_at and updated_at are set by gorm.
func (r *credentialPostgres) Create(ctx context.Context, record *entity.CredentialRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID retrieves a record scoped to its owner.
func (r *credentialPostgres) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.CredentialRecord, error) {
	var record entity.CredentialRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByUser retrieves all records owned by userID.
func (r *credentialPostgres) FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.CredentialRecord, error) {
	var records []entity.CredentialRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Update applies the supplied columns in a single UPDATE scoped by id and
// owner, then re-reads the row. The single statement keeps concurrent
// partial updates from interleaving field writes; gorm bumps updated_at as
// part of the same statement.
func (r *credentialPostgres) Update(ctx context.Context, id, userID uuid.UUID, fields map[string]any) (*entity.CredentialRecord, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.CredentialRecord{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, usecase.ErrRecordNotFound
	}
	return r.FindByID(ctx, id, userID)
}

// Delete removes the record scoped to its owner. Zero rows affected means
// absent or not owned, reported identically.
func (r *credentialPostgres) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.CredentialRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrRecordNotFound
	}
	return nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rishikesh-suvarna/keyzy/internal/feature/vault/domain/entity"
	"github.com/rishikesh-suvarna/keyzy/internal/platform/password"
)

// CredentialRepository abstracts the durable store of encrypted credential
// records. Every operation is parameterized by the owning user id; an
// implementation must never return a record whose user_id differs from it.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type CredentialRepository interface {
	// Create persists a new record, assigning its id and timestamps.
	Create(ctx context.Context, record *entity.CredentialRecord) error

	// FindByID retrieves a record owned by userID, or ErrRecordNotFound.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.CredentialRecord, error)

	// FindByUser retrieves all records owned by userID. Order is not part
	// of the contract.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.CredentialRecord, error)

	// Update applies the supplied columns to a record owned by userID in a
	// single atomic statement and returns the updated row, or
	// ErrRecordNotFound.
	Update(ctx context.Context, id, userID uuid.UUID, fields map[string]any) (*entity.CredentialRecord, error)

	// Delete removes a record owned by userID, or ErrRecordNotFound.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// Cipher seals and opens secret fields.
type Cipher interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(envelope string) ([]byte, error)
}

// PasswordGenerator produces passwords from a character-class policy.
type PasswordGenerator interface {
	Generate(policy password.Policy) (string, error)
}

// AddCredentialInput carries the fields for a new record.
type AddCredentialInput struct {
	ServiceName string
	ServiceURL  *string
	Username    *string
	Password    string
	Notes       *string
}

// UpdateCredentialInput carries a partial update. Nil fields are left
// untouched.
type UpdateCredentialInput struct {
	ServiceName *string
	ServiceURL  *string
	Username    *string
	Password    *string
	Notes       *string
}

// vaultUsecase orchestrates encryption, generation and storage. It is
// stateless per request: every call is a distinct transaction carrying no
// session memory beyond the resolved user id.
type vaultUsecase struct {
	records   CredentialRepository
	cipher    Cipher
	generator PasswordGenerator
}

// NewVaultUsecase creates a new instance of vaultUsecase.
func NewVaultUsecase(records CredentialRepository, cipher Cipher, generator PasswordGenerator) *vaultUsecase {
	return &vaultUsecase{records: records, cipher: cipher, generator: generator}
}

// AddCredential encrypts the password and persists a new record for userID.
// The returned record carries the plaintext password for the response; the
// ciphertext never leaves the service.
func (u *vaultUsecase) AddCredential(ctx context.Context, userID uuid.UUID, input AddCredentialInput) (*entity.CredentialRecord, error) {
	if input.ServiceName == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: service_name and password are required", ErrValidation)
	}

	sealed, err := u.cipher.Encrypt([]byte(input.Password))
	if err != nil {
		return nil, err
	}

	record := &entity.CredentialRecord{
		UserID:            userID,
		ServiceName:       input.ServiceName,
		ServiceURL:        input.ServiceURL,
		Username:          input.Username,
		EncryptedPassword: sealed,
		Notes:             input.Notes,
	}
	if err := u.records.Create(ctx, record); err != nil {
		return nil, mapStoreErr(err)
	}

	record.Password = input.Password
	return record, nil
}

// GetCredential retrieves one record owned by userID with its password
// decrypted.
func (u *vaultUsecase) GetCredential(ctx context.Context, id, userID uuid.UUID) (*entity.CredentialRecord, error) {
	record, err := u.records.FindByID(ctx, id, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if err := u.decryptInto(record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListCredentials retrieves all of userID's records with passwords
// decrypted. A record that fails authentication aborts the whole read: a
// tampered row is a security event, not something to skip over silently.
func (u *vaultUsecase) ListCredentials(ctx context.Context, userID uuid.UUID) ([]entity.CredentialRecord, error) {
	records, err := u.records.FindByUser(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	for i := range records {
		if err := u.decryptInto(&records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// UpdateCredential applies the supplied fields to a record owned by userID.
// A new password is encrypted before it reaches the store; the whole update
// is one atomic statement against the backing store.
func (u *vaultUsecase) UpdateCredential(ctx context.Context, id, userID uuid.UUID, input UpdateCredentialInput) (*entity.CredentialRecord, error) {
	fields := map[string]any{}
	if input.ServiceName != nil {
		if *input.ServiceName == "" {
			return nil, fmt.Errorf("%w: service_name must not be empty", ErrValidation)
		}
		fields["service_name"] = *input.ServiceName
	}
	if input.ServiceURL != nil {
		fields["service_url"] = input.ServiceURL
	}
	if input.Username != nil {
		fields["username"] = input.Username
	}
	if input.Notes != nil {
		fields["notes"] = input.Notes
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", ErrValidation)
		}
		sealed, err := u.cipher.Encrypt([]byte(*input.Password))
		if err != nil {
			return nil, err
		}
		fields["encrypted_password"] = sealed
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	record, err := u.records.Update(ctx, id, userID, fields)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if err := u.decryptInto(record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteCredential removes a record owned by userID. Hard delete, no
// tombstone.
func (u *vaultUsecase) DeleteCredential(ctx context.Context, id, userID uuid.UUID) error {
	if err := u.records.Delete(ctx, id, userID); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// GeneratePassword produces a password from the given policy. It touches no
// storage and performs no strength enforcement beyond alphabet composition.
func (u *vaultUsecase) GeneratePassword(_ context.Context, policy password.Policy) (string, error) {
	return u.generator.Generate(policy)
}

// decryptInto opens the record's envelope and fills the plaintext field.
func (u *vaultUsecase) decryptInto(record *entity.CredentialRecord) error {
	plaintext, err := u.cipher.Decrypt(record.EncryptedPassword)
	if err != nil {
		return fmt.Errorf("record %s: %w", record.ID, err)
	}
	record.Password = string(plaintext)
	record.EncryptedPassword = ""
	return nil
}

// mapStoreErr folds store failures into the service error taxonomy.
func mapStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

// Package entity defines the domain entities for the vault feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CredentialRecord is a secret entry owned by exactly one user. The
// password is sealed by the cipher engine before the record ever reaches
// storage; the plaintext Password field is populated only on the way out to
// an authenticated owner and is never persisted.
type CredentialRecord struct {
	// ID is the unique identifier for the record.
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// UserID is the owning user. It is immutable after creation and scopes
	// every store operation.
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	// ServiceName names the service the credential belongs to. Mandatory.
	ServiceName string `gorm:"size:255;not null" json:"service_name"`

	// ServiceURL is the optional address of the service.
	ServiceURL *string `gorm:"size:500" json:"service_url,omitempty"`

	// Username is the optional account name at the service.
	Username *string `gorm:"size:255" json:"username,omitempty"`

	// EncryptedPassword is the sealed envelope (nonce, ciphertext and
	// authentication tag). Never null, never sent to clients.
	EncryptedPassword string `gorm:"not null" json:"-"`

	// Password carries the decrypted secret in read responses only.
	Password string `gorm:"-" json:"password,omitempty"`

	// Notes is optional free text.
	Notes *string `json:"notes,omitempty"`

	// CreatedAt is set once at creation and never changes.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt strictly increases on every mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random 128-bit identifier so the id scheme does
// not depend on a database extension.
func (r *CredentialRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

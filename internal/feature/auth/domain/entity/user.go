// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the internal identity a verified external subject resolves to.
// It is provisioned on the first successful verification of a previously
// unseen subject and referenced by every credential record via UserID.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// SubjectID is the subject identifier asserted by the external
	// identity provider. It must be unique across all users.
	SubjectID string `gorm:"uniqueIndex;size:255;not null" json:"external_subject_id"`

	// Email is the address reported by the identity provider.
	Email string `gorm:"size:255;not null" json:"email"`

	// CreatedAt is the timestamp when the user was provisioned.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random 128-bit identifier so the id scheme does
// not depend on a database extension.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Package usecase implements the vault service: the façade composing the
// cipher engine, the password generator and the credential record store.
package usecase

import "errors"

var (
	// ErrRecordNotFound is returned when a record is absent or owned by a
	// different user. The two cases are deliberately indistinguishable so
	// the existence of other users' records is never revealed.
	ErrRecordNotFound = errors.New("credential record not found")

	// ErrValidation is returned when a mandatory field is missing or a
	// partial update supplies no fields.
	ErrValidation = errors.New("invalid credential input")

	// ErrTimeout is returned when a store operation exceeds the caller's
	// deadline. Reads are safe to retry; writes are not without an
	// idempotency key, which this service does not provide, so retrying
	// writes is the caller's responsibility to reason about.
	ErrTimeout = errors.New("store operation timed out")
)

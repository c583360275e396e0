// Package usecase implements the identity resolution logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by subject or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrSubjectAlreadyExists is returned by the repository when a concurrent
	// insert provisioned the same subject first. Resolution treats it as a
	// retryable race, not a failure.
	ErrSubjectAlreadyExists = errors.New("subject already registered")
)

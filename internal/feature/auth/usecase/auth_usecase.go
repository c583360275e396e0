package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rishikesh-suvarna/keyzy/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. If a user with the same subject already
	// exists it returns ErrSubjectAlreadyExists.
	Create(ctx context.Context, user *entity.User) error

	// FindBySubject retrieves the user provisioned for the given external
	// subject identifier, or ErrUserNotFound.
	FindBySubject(ctx context.Context, subjectID string) (*entity.User, error)

	// FindByID retrieves a user by internal id, or ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// authUsecase maps verified external subjects onto internal users.
type authUsecase struct {
	users UserRepository
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository) *authUsecase {
	return &authUsecase{users: users}
}

// ResolveSubject returns the internal user for a verified subject,
// provisioning one on first sight. Upsert semantics: resolving an already
// registered subject is a no-op, not an error, so the operation is
// idempotent and safe to run on every authenticated request.
func (u *authUsecase) ResolveSubject(ctx context.Context, subjectID, email string) (*entity.User, error) {
	if subjectID == "" {
		return nil, ErrUserNotFound
	}

	user, err := u.users.FindBySubject(ctx, subjectID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to resolve subject: %w", err)
	}

	user = &entity.User{SubjectID: subjectID, Email: email}
	if err := u.users.Create(ctx, user); err != nil {
		// A concurrent request for the same unseen subject can win the
		// insert; the unique index makes that visible here. Re-read and
		// return the winner's row.
		if errors.Is(err, ErrSubjectAlreadyExists) {
			return u.users.FindBySubject(ctx, subjectID)
		}
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}
	return user, nil
}

// Profile returns the user row for an already-resolved internal id.
func (u *authUsecase) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

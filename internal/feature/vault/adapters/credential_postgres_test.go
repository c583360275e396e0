package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rishikesh-suvarna/keyzy/internal/feature/vault/domain/entity"
	"github.com/rishikesh-suvarna/keyzy/internal/feature/vault/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.CredentialRecord{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func strPtr(s string) *string { return &s }

func createRecord(t *testing.T, repo *credentialPostgres, userID uuid.UUID, service string) *entity.CredentialRecord {
	t.Helper()

	record := &entity.CredentialRecord{
		UserID:            userID,
		ServiceName:       service,
		Username:          strPtr("octocat"),
		EncryptedPassword: "sealed-envelope",
	}
	require.NoError(t, repo.Create(context.Background(), record))
	return record
}

func TestCredentialPostgres_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialPostgres(db)
	userID := uuid.New()

	record := createRecord(t, repo, userID, "GitHub")

	assert.NotEqual(t, uuid.Nil, record.ID, "ID is not set")
	assert.False(t, record.CreatedAt.IsZero(), "CreatedAt is not set")
	assert.Equal(t, record.CreatedAt, record.UpdatedAt, "timestamps differ at creation")
}

func TestCredentialPostgres_FindByID(t *testing.T) {
	t.Run("owner can read", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialPostgres(db)
		userID := uuid.New()
		record := createRecord(t, repo, userID, "GitHub")

		got, err := repo.FindByID(context.Background(), record.ID, userID)

		require.NoError(t, err)
		assert.Equal(t, "GitHub", got.ServiceName)
		assert.Equal(t, "sealed-envelope", got.EncryptedPassword)
	})

	t.Run("another user's record reads as absent", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialPostgres(db)
		owner := uuid.New()
		other := uuid.New()
		record := createRecord(t, repo, owner, "GitHub")

		_, err := repo.FindByID(context.Background(), record.ID, other)

		assert.ErrorIs(t, err, usecase.ErrRecordNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialPostgres(db)

		_, err := repo.FindByID(context.Background(), uuid.New(), uuid.New())

		assert.ErrorIs(t, err, usecase.ErrRecordNotFound)
	})
}

func TestCredentialPostgres_FindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialPostgres(db)
	alice := uuid.New()
	bob := uuid.New()

	createRecord(t, repo, alice, "GitHub")
	createRecord(t, repo, alice, "GitLab")
	createRecord(t, repo, bob, "Bitbucket")

	got, err := repo.FindByUser(context.Background(), alice)

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, alice, r.UserID)
	}
}

func TestCredentialPostgres_Update(t *testing.T) {
	t.Run("partial update leaves other fields and bumps updated_at", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialPostgres(db)
		userID := uuid.New()
		record := createRecord(t, repo, userID, "GitHub")
		before := record.UpdatedAt

		// Make the clock move so the strict increase is observable.
		time.Sleep(10 * time.Millisecond)

		got, err := repo.Update(context.Background(), record.ID, userID, map[string]any{
			"notes": strPtr("rotated last week"),
		})

		require.NoError(t, err)
		require.NotNil(t, got.Notes)
		assert.Equal(t, "rotated last week", *got.Notes)
		assert.Equal(t, "GitHub", got.ServiceName, "service_name must be untouched")
		require.NotNil(t, got.Username)
		assert.Equal(t, "octocat", *got.Username, "username must be untouched")
		assert.Equal(t, "sealed-envelope", got.EncryptedPassword, "password must be untouched")
		assert.True(t, got.UpdatedAt.After(before), "updated_at must strictly increase")
		assert.Equal(t, record.CreatedAt.Unix(), got.CreatedAt.Unix(), "created_at must be immutable")
	})

	t.Run("another user's record updates as absent", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialPostgres(db)
		owner := uuid.New()
		record := createRecord(t, repo, owner, "GitHub")

		_, err := repo.Update(context.Background(), record.ID, uuid.New(), map[string]any{
			"service_name": "Hijacked",
		})

		assert.ErrorIs(t, err, usecase.ErrRecordNotFound)

		// The row is untouched.
		got, err := repo.FindByID(context.Background(), record.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, "GitHub", got.ServiceName)
	})

	t.Run("unknown id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialPostgres(db)

		_, err := repo.Update(context.Background(), uuid.New(), uuid.New(), map[string]any{
			"service_name": "GitHub",
		})

		assert.ErrorIs(t, err, usecase.ErrRecordNotFound)
	})
}

func TestCredentialPostgres_Delete(t *testing.T) {
	t.Run("delete then read is absent", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialPostgres(db)
		userID := uuid.New()
		record := createRecord(t, repo, userID, "GitHub")

		require.NoError(t, repo.Delete(context.Background(), record.ID, userID))

		_, err := repo.FindByID(context.Background(), record.ID, userID)
		assert.ErrorIs(t, err, usecase.ErrRecordNotFound)
	})

	t.Run("another user's record deletes as absent", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialPostgres(db)
		owner := uuid.New()
		record := createRecord(t, repo, owner, "GitHub")

		err := repo.Delete(context.Background(), record.ID, uuid.New())

		assert.ErrorIs(t, err, usecase.ErrRecordNotFound)

		// Still present for the owner.
		_, err = repo.FindByID(context.Background(), record.ID, owner)
		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialPostgres(db)

		err := repo.Delete(context.Background(), uuid.New(), uuid.New())

		assert.ErrorIs(t, err, usecase.ErrRecordNotFound)
	})
}

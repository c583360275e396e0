// Package handler provides the HTTP handlers for the vault feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rishikesh-suvarna/keyzy/internal/api"
	"github.com/rishikesh-suvarna/keyzy/internal/feature/vault/domain/entity"
	vaultusecase "github.com/rishikesh-suvarna/keyzy/internal/feature/vault/usecase"
	"github.com/rishikesh-suvarna/keyzy/internal/platform/crypto"
	"github.com/rishikesh-suvarna/keyzy/internal/platform/entropy"
	"github.com/rishikesh-suvarna/keyzy/internal/platform/password"
	jwtmw "github.com/rishikesh-suvarna/keyzy/internal/platform/jwt"
)

// defaultStoreTimeout bounds how long a single store operation may block
// before the request fails with 504.
const defaultStoreTimeout = 5 * time.Second

// VaultUsecase defines the vault service operations used by the handlers.
// Following Go convention, the interface is defined by the consumer
// (handler), not the provider (usecase).
type VaultUsecase interface {
	AddCredential(ctx context.Context, userID uuid.UUID, input vaultusecase.AddCredentialInput) (*entity.CredentialRecord, error)
	GetCredential(ctx context.Context, id, userID uuid.UUID) (*entity.CredentialRecord, error)
	ListCredentials(ctx context.Context, userID uuid.UUID) ([]entity.CredentialRecord, error)
	UpdateCredential(ctx context.Context, id, userID uuid.UUID, input vaultusecase.UpdateCredentialInput) (*entity.CredentialRecord, error)
	DeleteCredential(ctx context.Context, id, userID uuid.UUID) error
	GeneratePassword(ctx context.Context, policy password.Policy) (string, error)
}

// VaultHandler handles credential CRUD and password generation requests.
type VaultHandler struct {
	vault        VaultUsecase
	storeTimeout time.Duration
}

// NewVaultHandler creates a new instance of VaultHandler.
func NewVaultHandler(vault VaultUsecase) *VaultHandler {
	return &VaultHandler{vault: vault, storeTimeout: defaultStoreTimeout}
}

// List returns all of the caller's credential records with passwords
// decrypted for display.
func (h *VaultHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.storeTimeout)
	defer cancel()

	records, err := h.vault.ListCredentials(ctx, userID)
	if err != nil {
		h.respondError(c, userID, err)
		return
	}
	// Contract-wise the list is unordered; an empty vault is an empty
	// array, not null.
	if records == nil {
		records = []entity.CredentialRecord{}
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "passwords retrieved", Data: records})
}

// Get returns a single credential record owned by the caller.
func (h *VaultHandler) Get(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid password id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.storeTimeout)
	defer cancel()

	record, err := h.vault.GetCredential(ctx, recordID, userID)
	if err != nil {
		h.respondError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password retrieved", Data: record})
}

// Create adds a new credential record for the caller.
func (h *VaultHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req api.CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create credential validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "service_name and password are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.storeTimeout)
	defer cancel()

	record, err := h.vault.AddCredential(ctx, userID, vaultusecase.AddCredentialInput{
		ServiceName: req.ServiceName,
		ServiceURL:  req.ServiceURL,
		Username:    req.Username,
		Password:    req.Password,
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondError(c, userID, err)
		return
	}

	slog.Info("credential created", "record_id", record.ID, "user_id", userID)
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "password created", Data: record})
}

// Update applies a partial update to a credential record owned by the
// caller. Only supplied fields change.
func (h *VaultHandler) Update(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid password id"})
		return
	}

	var req api.UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update credential validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.storeTimeout)
	defer cancel()

	record, err := h.vault.UpdateCredential(ctx, recordID, userID, vaultusecase.UpdateCredentialInput{
		ServiceName: req.ServiceName,
		ServiceURL:  req.ServiceURL,
		Username:    req.Username,
		Password:    req.Password,
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondError(c, userID, err)
		return
	}

	slog.Info("credential updated", "record_id", record.ID, "user_id", userID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password updated", Data: record})
}

// Delete removes a credential record owned by the caller.
func (h *VaultHandler) Delete(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid password id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.storeTimeout)
	defer cancel()

	if err := h.vault.DeleteCredential(ctx, recordID, userID); err != nil {
		h.respondError(c, userID, err)
		return
	}

	slog.Info("credential deleted", "record_id", recordID, "user_id", userID)
	c.Status(http.StatusNoContent)
}

// Generate produces a password from the requested character-class policy.
func (h *VaultHandler) Generate(c *gin.Context) {
	var req api.GeneratePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	generated, err := h.vault.GeneratePassword(c.Request.Context(), password.Policy{
		Length:         req.Length,
		IncludeUpper:   req.IncludeUpper,
		IncludeLower:   req.IncludeLower,
		IncludeNumbers: req.IncludeNumbers,
		IncludeSymbols: req.IncludeSymbols,
		ExcludeSimilar: req.ExcludeSimilar,
	})
	if err != nil {
		h.respondError(c, uuid.Nil, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{
		Message: "password generated",
		Data:    api.GeneratePasswordResponse{Password: generated},
	})
}

// respondError maps service errors onto the closed HTTP taxonomy. No
// internal error, stack trace or storage-engine detail crosses this
// boundary.
func (h *VaultHandler) respondError(c *gin.Context, userID uuid.UUID, err error) {
	switch {
	case errors.Is(err, vaultusecase.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "password not found"})
	case errors.Is(err, vaultusecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
	case errors.Is(err, password.ErrInvalidPolicy):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "at least one character class and a length between 1 and 128 are required"})
	case errors.Is(err, password.ErrAlphabetExhausted):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "selected character classes leave no characters to draw from"})
	case errors.Is(err, vaultusecase.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, api.ErrorResponse{Error: "request timed out"})
	case errors.Is(err, crypto.ErrAuthenticationFailed):
		// Tampered ciphertext or a wrong key. Security event: log it, leak
		// nothing.
		slog.Error("credential decryption failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	case errors.Is(err, entropy.ErrUnavailable):
		// Broken host, not a request-level problem.
		slog.Error("entropy source unavailable", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	default:
		slog.Error("vault operation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

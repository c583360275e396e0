// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rishikesh-suvarna/keyzy/internal/api"
	"github.com/rishikesh-suvarna/keyzy/internal/feature/auth/domain/entity"
	jwtmw "github.com/rishikesh-suvarna/keyzy/internal/platform/jwt"
)

// AuthUsecase defines the identity operations used by the handlers.
// Following Go convention, the interface is defined by the consumer
// (handler), not the provider (usecase).
type AuthUsecase interface {
	// ResolveSubject upserts and returns the internal user for a verified
	// external subject.
	ResolveSubject(ctx context.Context, subjectID, email string) (*entity.User, error)
	// Profile returns the user row for an internal id.
	Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

// AuthHandler handles registration and profile requests.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register upserts the caller's user record. The subject comes from the
// verified bearer assertion, never from the body, so a caller cannot
// register on behalf of another subject. Registering twice is a no-op.
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	subject := jwtmw.SubjectFromContext(c)
	if subject == "" {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.auth.ResolveSubject(c.Request.Context(), subject, req.Email)
	if err != nil {
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "registration failed"})
		return
	}

	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "user registered", Data: user})
}

// Profile returns the authenticated caller's user record.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		slog.Warn("profile lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "profile retrieved", Data: user})
}

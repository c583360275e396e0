package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rishikesh-suvarna/keyzy/internal/feature/auth/domain/entity"
)

const (
	// ContextUserID is the gin context key holding the resolved internal
	// user id (uuid.UUID).
	ContextUserID = "userID"

	// ContextSubject is the gin context key holding the verified external
	// subject identifier.
	ContextSubject = "subject"
)

// IdentityResolver maps a verified subject to an internal user, provisioning
// one on first sight.
type IdentityResolver interface {
	ResolveSubject(ctx context.Context, subjectID, email string) (*entity.User, error)
}

// AuthRequired returns a gin middleware that verifies the bearer assertion
// and resolves the caller to an internal user id. Handlers below it receive
// the resolved id from the context, never a raw token; there is no route to
// the credential store without passing through here.
func AuthRequired(verifier Verifier, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := resolver.ResolveSubject(c.Request.Context(), claims.Subject, claims.Email)
		if err != nil {
			slog.Error("identity resolution failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextSubject, claims.Subject)
		c.Next()
	}
}

// UserIDFromContext returns the resolved internal user id set by AuthRequired.
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// SubjectFromContext returns the verified external subject, or "".
func SubjectFromContext(c *gin.Context) string {
	return c.GetString(ContextSubject)
}

package ratelimiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	jwtmw "github.com/rishikesh-suvarna/keyzy/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubLimiter records the key it was asked about and returns a fixed answer.
type stubLimiter struct {
	allowed bool
	err     error
	lastKey string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.lastKey = key
	return s.allowed, s.err
}

func serve(limiter Limiter, userID uuid.UUID) *httptest.ResponseRecorder {
	r := gin.New()
	if userID != uuid.Nil {
		r.Use(func(c *gin.Context) {
			c.Set(jwtmw.ContextUserID, userID)
			c.Next()
		})
	}
	r.Use(Middleware(limiter))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware(t *testing.T) {
	t.Run("allowed request passes through", func(t *testing.T) {
		w := serve(&stubLimiter{allowed: true}, uuid.Nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("denied request gets 429", func(t *testing.T) {
		w := serve(&stubLimiter{allowed: false}, uuid.Nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("limiter failure fails open", func(t *testing.T) {
		w := serve(&stubLimiter{err: assert.AnError}, uuid.Nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("keys on the resolved user id", func(t *testing.T) {
		userID := uuid.New()
		limiter := &stubLimiter{allowed: true}

		w := serve(limiter, userID)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), limiter.lastKey)
	})

	t.Run("keys on the client ip before authentication", func(t *testing.T) {
		limiter := &stubLimiter{allowed: true}

		serve(limiter, uuid.Nil)
		assert.NotEmpty(t, limiter.lastKey)
		assert.NotContains(t, limiter.lastKey, "-")
	})
}

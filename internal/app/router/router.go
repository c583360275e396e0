package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "github.com/rishikesh-suvarna/keyzy/internal/feature/auth/transport/handler"
	vaulthandler "github.com/rishikesh-suvarna/keyzy/internal/feature/vault/transport/handler"
	"github.com/rishikesh-suvarna/keyzy/internal/platform/http/handler"
	jwtmw "github.com/rishikesh-suvarna/keyzy/internal/platform/jwt"
	"github.com/rishikesh-suvarna/keyzy/internal/shared/ratelimiter"
)

// NewRouter wires the HTTP surface. Everything under /api requires a
// verified bearer assertion; the middleware resolves the caller to an
// internal user id before any handler runs.
func NewRouter(
	authHandler *authhandler.AuthHandler,
	vaultHandler *vaulthandler.VaultHandler,
	verifier jwtmw.Verifier,
	resolver jwtmw.IdentityResolver,
	limiter ratelimiter.Limiter,
) *gin.Engine {
	r := gin.Default()

	// The browser client runs on a different origin.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// Liveness probe, no auth.
	r.GET("/healthz", handler.Health)

	// The limiter runs first, keyed by client IP, so unauthenticated
	// traffic (token guessing included) is throttled before any signature
	// check.
	api := r.Group("/api")
	api.Use(ratelimiter.Middleware(limiter))
	api.Use(jwtmw.AuthRequired(verifier, resolver))
	{
		api.POST("/auth/register", authHandler.Register)
		api.GET("/user/profile", authHandler.Profile)

		api.GET("/passwords", vaultHandler.List)
		api.POST("/passwords", vaultHandler.Create)
		api.GET("/passwords/:id", vaultHandler.Get)
		api.PUT("/passwords/:id", vaultHandler.Update)
		api.DELETE("/passwords/:id", vaultHandler.Delete)

		api.POST("/generate-password", vaultHandler.Generate)
	}

	return r
}

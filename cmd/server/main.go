package main

import (
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/rishikesh-suvarna/keyzy/internal/app/di"
	"github.com/rishikesh-suvarna/keyzy/internal/app/router"
	authhandler "github.com/rishikesh-suvarna/keyzy/internal/feature/auth/transport/handler"
	authusecase "github.com/rishikesh-suvarna/keyzy/internal/feature/auth/usecase"
	vaultadapters "github.com/rishikesh-suvarna/keyzy/internal/feature/vault/adapters"
	vaulthandler "github.com/rishikesh-suvarna/keyzy/internal/feature/vault/transport/handler"
	vaultusecase "github.com/rishikesh-suvarna/keyzy/internal/feature/vault/usecase"
	"github.com/rishikesh-suvarna/keyzy/internal/platform/crypto"
	infradb "github.com/rishikesh-suvarna/keyzy/internal/platform/db"
	"github.com/rishikesh-suvarna/keyzy/internal/platform/entropy"
	jwtmw "github.com/rishikesh-suvarna/keyzy/internal/platform/jwt"
	"github.com/rishikesh-suvarna/keyzy/internal/platform/password"
	infraredis "github.com/rishikesh-suvarna/keyzy/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without identity cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Crypto
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	src := entropy.NewSource()
	engine, err := crypto.NewEngine(os.Getenv("ENCRYPTION_KEY"), src)
	if err != nil {
		log.Fatalf("failed to initialize cipher engine: %v", err)
	}
	generator := password.NewGenerator(src)

	// Repository
	userRepo := di.NewUserRepository(rdb, db)
	credentialRepo := vaultadapters.NewCredentialPostgres(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo)
	vaultUC := vaultusecase.NewVaultUsecase(credentialRepo, engine, generator)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	vaultH := vaulthandler.NewVaultHandler(vaultUC)

	// Router
	verifier := jwtmw.NewHS256Verifier(secret)
	limiter := di.NewLimiter(rdb)
	r := router.NewRouter(authH, vaultH, verifier, authUC, limiter)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

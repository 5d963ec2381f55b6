package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/bloodbank/bloodbank/backend/go-services/internal/donation/handler"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/donation/repository"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/donation/service"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/kvstore"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/oidc"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/tokens"
	"github.com/bloodbank/bloodbank/backend/go-services/pkg/middleware"
)

// Standalone donation API for local development. Uses Redis when REDIS_ADDR
// is set, an in-memory store otherwise, and accepts unsigned tokens unless
// JWT_SECRET is provided.
func main() {
	port := os.Getenv("DONATION_SERVICE_PORT")
	if port == "" {
		port = "5003"
	}

	var store kvstore.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Printf("warning: cannot connect to Redis (%v) — using memory store", err)
			store = kvstore.NewMemoryStore()
		} else {
			store = kvstore.NewRedisStore(client)
		}
	} else {
		store = kvstore.NewMemoryStore()
	}

	var verifier middleware.Verifier
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		ver, err := tokens.NewVerifier(secret)
		if err != nil {
			log.Fatal(err)
		}
		verifier = ver
	} else {
		log.Printf("warning: JWT_SECRET not set — accepting unsigned tokens")
		verifier = oidc.NewInsecureVerifier()
	}

	r := gin.New()
	r.Use(gin.Recovery())

	svc := service.New(repository.NewKVRepository(store))
	handler.New(svc, verifier).Register(r.Group("/"))

	log.Printf("donation service listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

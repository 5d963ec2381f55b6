package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bloodbank/bloodbank/backend/go-services/handlers"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/config"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/database"
	donationhandler "github.com/bloodbank/bloodbank/backend/go-services/internal/donation/handler"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/donation/repository"
	donationservice "github.com/bloodbank/bloodbank/backend/go-services/internal/donation/service"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/kvstore"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/oidc"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/sessions"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/tokens"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/users"
	"github.com/bloodbank/bloodbank/backend/go-services/pkg/logger"
	"github.com/bloodbank/bloodbank/backend/go-services/pkg/metrics"
	"github.com/bloodbank/bloodbank/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL env controls verbosity: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v oidc=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.OIDC.IssuerURL != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond
	// to OPTIONS. Production should use a stricter policy.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery())

	// shared runtime vars used by handlers/readiness
	var verifier middleware.Verifier
	var userSvc *users.Service
	var sessionsSvc *sessions.Service
	var donationStore kvstore.Store

	// Connect to Redis early: it backs the donation store, refresh sessions,
	// the access-token blacklist and the optional rate limiter.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			sessions.SetBlacklistClient(redisClient)
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint returns 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["donations"] = donationStore != nil
		if donationStore == nil {
			ready = false
		}
		deps["sessions"] = sessionsSvc != nil
		deps["users"] = userSvc != nil
		deps["auth"] = verifier != nil
		if verifier == nil {
			ready = false
		}
		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil
			if redisClient == nil {
				ready = false
			}
		}

		status := http.StatusOK
		label := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			label = "not_ready"
		}
		c.JSON(status, gin.H{"status": label, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Token verification: external OIDC issuer when configured, the local JWT
	// secret otherwise. ALLOW_INSECURE_TOKEN=true enables payload-only parsing
	// for integration tests.
	ctx := context.Background()
	if cfg.OIDC.IssuerURL != "" && cfg.OIDC.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, strings.TrimRight(cfg.OIDC.IssuerURL, "/"), cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil && cfg.JWT.Secret != "" {
		ver, err := tokens.NewVerifier(cfg.JWT.Secret)
		if err != nil {
			logger.Warnf("failed to initialize JWT verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil {
		if strings.ToLower(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN"))) == "true" {
			logger.Warn("enabling insecure token verifier (integration mode)")
			verifier = oidc.NewInsecureVerifier()
		}
	}

	// Donation records and refresh sessions live in Redis. The in-memory
	// store keeps the API usable in local development without Redis, but
	// data does not survive a restart.
	if redisClient != nil {
		donationStore = kvstore.NewRedisStore(redisClient)
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, "session:"))
	} else {
		logger.Warnf("Redis unavailable; using in-memory stores (data is not persisted)")
		donationStore = kvstore.NewMemoryStore()
		sessionsSvc = sessions.NewService(sessions.NewMemoryRepository())
	}

	// MongoDB-backed user accounts. Retry with backoff to tolerate startup races.
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			usersCol := client.Database(cfg.MongoDB.Database).Collection("users")
			userSvc = users.NewService(users.NewMongoUserRepository(usersCol))
		}
	}

	// Donation intake and aggregation endpoints
	donationSvc := donationservice.New(repository.NewKVRepository(donationStore))
	if verifier != nil {
		dh := donationhandler.New(donationSvc, verifier)
		dh.Register(r.Group("/"))
	} else {
		logger.Warnf("donation routes not registered: no token verifier configured")
	}

	// Account and token lifecycle endpoints need both Mongo users and sessions
	var authHandler *handlers.AuthHandler
	if userSvc != nil && sessionsSvc != nil {
		authHandler = handlers.NewAuthHandler(cfg, userSvc, sessionsSvc)
		authHandler.Register(r.Group("/"))
	} else {
		logger.Warnf("auth handlers not registered because user service is unavailable")
	}

	handlers.RegisterSwagger(r)

	api := r.Group("/api/v1")
	if verifier != nil && authHandler != nil {
		api.GET("/me", middleware.AuthMiddleware(verifier), authHandler.Me)
	} else {
		api.GET("/me", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "auth not configured"})
		})
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Debugf("services: user=%v sessions=%v verifier=%v", userSvc != nil, sessionsSvc != nil, verifier != nil)
	logger.Infof("Starting bloodbank service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

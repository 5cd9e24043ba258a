// Package main is the entry point for the backoffice API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"backoffice/internal/domain/auth"
	domainthrottle "backoffice/internal/domain/throttle"
	v1 "backoffice/internal/infrastructure/http/v1"
	"backoffice/internal/infrastructure/storage/postgres"
	"backoffice/internal/infrastructure/storage/postgres/auth_repo"
	"backoffice/internal/infrastructure/throttle"
	"backoffice/pkg/logger"
)

func main() {
	// Load .env if present; real environment always wins.
	_ = godotenv.Load()

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting backoffice server")

	// --- Database connection ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Audit ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Throttling ---
	throttleLimit, err := domainthrottle.New(
		getEnvInt("THROTTLE_WINDOW_SECONDS", domainthrottle.DefaultWindowSeconds),
		getEnvInt("THROTTLE_MAX_REQUESTS", domainthrottle.DefaultMaxRequests),
	)
	if err != nil {
		log.Fatalw("invalid throttle configuration", "error", err)
	}

	var (
		throttler domainthrottle.Throttler
		rdb       *redis.Client
	)
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warnw("redis unreachable, throttling will fail open until it recovers", "error", err)
		}
		throttler = throttle.NewRedisThrottler(rdb)
		log.Infow("throttling enabled", "backend", "redis", "limit", throttleLimit.String())
	} else {
		memThrottler := throttle.NewMemoryThrottler()
		memThrottler.StartJanitor(ctx)
		throttler = memThrottler
		log.Infow("throttling enabled", "backend", "memory", "limit", throttleLimit.String())
	}

	// Credential endpoints get a tighter burst cap on top of the window limit.
	loginBurst := throttle.NewBurstLimiter(1, 5)
	loginBurst.StartJanitor(ctx)

	// --- JWT Service ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtConfig := auth.DefaultJWTConfig(jwtSecret)
	jwtService := auth.NewJWTService(jwtConfig)

	// --- Auth Service ---
	userRepo := auth_repo.NewUserRepo(txManager)
	roleRepo := auth_repo.NewRoleRepo(txManager)
	permRepo := auth_repo.NewPermissionRepo(txManager)
	tokenRepo := auth_repo.NewTokenRepo(txManager)

	authService := auth.NewService(
		userRepo,
		roleRepo,
		permRepo,
		tokenRepo,
		txManager,
		jwtService,
		auth.DefaultServiceConfig(),
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:               pool,
		TxManager:          txManager,
		Redis:              rdb,
		Logger:             log,
		JWTValidator:       jwtService,
		AuthService:        authService,
		Audit:              auditService,
		Throttler:          throttler,
		ThrottleLimit:      throttleLimit,
		LoginBurst:         loginBurst,
		IdempotencyEnabled: getEnv("IDEMPOTENCY_ENABLED", "false") == "true",
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	if rdb != nil {
		_ = rdb.Close()
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

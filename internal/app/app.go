package app

import (
	"context"
	"fmt"
	"time"

	"psfinder_backend/database"
	"psfinder_backend/internal/cache"
	"psfinder_backend/internal/config"
	"psfinder_backend/internal/handlers"
	"psfinder_backend/internal/logger"
	"psfinder_backend/internal/middleware"
	"psfinder_backend/internal/narrative"
	"psfinder_backend/internal/routes"
	"psfinder_backend/internal/services"
	"psfinder_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Database migration failed", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine. The integration tests call it
// directly against a test database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	redisClient := initializeRedis(cfg)
	appCache := cache.New(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second)
	annotator := initializeAnnotator(cfg)

	serviceContainer := services.NewServiceContainer(cfg, annotator, appCache)
	handlerContainer := handlers.NewHandlerContainer(serviceContainer, validator.New())

	router := initializeGinRouter(cfg, gormDB, redisClient)
	routes.RegisterRoutes(router, handlerContainer)

	return router
}

// initializeRedis connects to Redis for caching and rate limiting. Redis
// being down degrades both features but never blocks startup.
func initializeRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Warn("Redis address not configured, cache and rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, cache and rate limiting degraded", "error", err)
	} else {
		logger.Info("Redis connected", "addr", cfg.Redis.Addr)
	}
	return client
}

// initializeAnnotator builds the narrative side of matching. Without an
// API key matching still works, responses just carry null narrative
// fields.
func initializeAnnotator(cfg *config.Config) *narrative.Annotator {
	var generator narrative.ContentGenerator

	if cfg.Narrative.APIKey != "" {
		g, err := narrative.NewGeminiGenerator(context.Background(), cfg.Narrative.APIKey, cfg.Narrative.Model)
		if err != nil {
			logger.Warn("Narrative generator disabled", "error", err)
		} else {
			generator = g
			logger.Info("Narrative generator initialized", "model", cfg.Narrative.Model)
		}
	} else {
		logger.Warn("No narrative API key configured, matches will carry null narrative fields")
	}

	breaker := narrative.NewBreaker(cfg.Narrative.FailureThreshold, cfg.Narrative.ResetTimeout)
	return narrative.NewAnnotator(generator, breaker, cfg.Narrative.Timeout)
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimit.PerMinute))
	router.Use(middleware.DBMiddleware(db))
	return router
}

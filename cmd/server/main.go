package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/usicttechiete/boli.ai/internal/analyzer"
	"github.com/usicttechiete/boli.ai/internal/api"
	"github.com/usicttechiete/boli.ai/internal/cache"
	"github.com/usicttechiete/boli.ai/internal/config"
	"github.com/usicttechiete/boli.ai/internal/db"
	"github.com/usicttechiete/boli.ai/internal/onboarding"
	"github.com/usicttechiete/boli.ai/internal/pipeline"
	"github.com/usicttechiete/boli.ai/internal/repository"
	"github.com/usicttechiete/boli.ai/internal/storage"
	"github.com/usicttechiete/boli.ai/internal/stt"
	"github.com/usicttechiete/boli.ai/internal/tips"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}
	if err := db.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	sessionRepo := repository.NewPostgresRepository()
	dialectRepo := repository.NewPostgresDialectRepository()

	// Best-effort cache; runs disabled when REDIS_URL is unset
	store := cache.New(cfg.RedisURL)
	defer store.Close()

	// External collaborators
	audioStore := storage.NewSupabase(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.StorageBucket)

	sttProvider, err := stt.CreateProvider()
	if err != nil {
		log.Fatalf("Failed to create STT provider: %v", err)
	}

	tipGenerator := tips.NewLLMGenerator(cfg.SarvamAPIKey, cfg.SarvamLLMURL)
	remoteAnalyzer := analyzer.NewRemote(cfg.AnalyzerURL)

	// Core pipeline and onboarding service
	runner := pipeline.NewRunner(audioStore, sttProvider, remoteAnalyzer, tipGenerator, sessionRepo)
	onboardingSvc := onboarding.NewService(sttProvider, sessionRepo, dialectRepo, store)

	api.Init(runner, sessionRepo, dialectRepo, onboardingSvc, store)

	r := gin.Default()

	// Add CORS middleware for mobile app
	r.Use(corsMiddleware())

	// Register routes
	api.RegisterRoutes(r)

	log.Printf("Boli.AI backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for mobile app
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-User-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

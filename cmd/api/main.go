package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loren166/foodgram-project-react/config"
	"github.com/loren166/foodgram-project-react/internal/api"
	"github.com/loren166/foodgram-project-react/internal/database"
	"github.com/loren166/foodgram-project-react/internal/middleware"
	"github.com/loren166/foodgram-project-react/internal/router"
	"github.com/loren166/foodgram-project-react/internal/server"
	"github.com/loren166/foodgram-project-react/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	waitCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.WaitForDB(waitCtx, cfg); err != nil {
		log.Fatalf("Database not available: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var storage service.ImageStorage
	if cfg.S3Bucket != "" {
		s3Cfg, err := config.NewS3Config(context.Background(), cfg.S3Bucket)
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
		storage = service.NewS3ImageStorage(s3Cfg)
	} else {
		storage = service.NewLocalImageStorage(cfg.MediaRoot, cfg.MediaURL)
	}

	// the rate limiter is optional: without Redis writes are unthrottled
	var rateLimiter *middleware.RateLimiter
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		log.Printf("Redis unavailable, write rate limiting disabled: %v", err)
	} else {
		rateLimiter = middleware.NewRecipeWriteRateLimiter(redisClient)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, storage)
	subscriptionService := service.NewSubscriptionService(db)

	engine := router.SetupRouter(
		api.NewUserHandler(db, authService, subscriptionService),
		api.NewRecipeHandler(db, recipeService, authService, rateLimiter),
		api.NewTagHandler(db),
		api.NewIngredientHandler(db),
	)

	srv := server.New(cfg, engine)

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

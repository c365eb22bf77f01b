package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/e3lany/e3lany_api/internal/cache"
	"github.com/e3lany/e3lany_api/internal/config"
	"github.com/e3lany/e3lany_api/internal/database"
	"github.com/e3lany/e3lany_api/internal/handler"
	"github.com/e3lany/e3lany_api/internal/middleware"
	"github.com/e3lany/e3lany_api/internal/repository"
	"github.com/e3lany/e3lany_api/internal/service"
	"github.com/e3lany/e3lany_api/internal/worker"
)

// main is the application entrypoint for the e3lany marketplace API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting e3lany api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize autocomplete response cache
	autocompleteCache := cache.NewAutocompleteCache(redisClient, cfg.Cache.AutocompleteTTL)

	// 4. Initialize repositories
	adRepo := repository.NewAdRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	// 5. Initialize services
	adSvc := service.NewAdService(adRepo, categoryRepo, userRepo)
	autocompleteSvc := service.NewAutocompleteService(adRepo, categoryRepo, autocompleteCache)
	categorySvc := service.NewCategoryService(categoryRepo)
	userSvc := service.NewUserService(userRepo)

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(db),
		Ad:       handler.NewAdHandler(adSvc, autocompleteSvc),
		Category: handler.NewCategoryHandler(categorySvc),
		User:     handler.NewUserHandler(userSvc),
	}

	// 7. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware(cfg.JWTSecret)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 9. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 10. Start workers
	go worker.NewCountSyncWorker(categoryRepo, cfg.Worker.CountSyncInterval).Start(ctx)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Ad       *handler.AdHandler
	Category *handler.CategoryHandler
	User     *handler.UserHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/health", handlers.Health.GetHealth)

	// Public marketplace routes
	router.GET("/ads", handlers.Ad.ListAds)
	router.GET("/ads/search", handlers.Ad.SearchAds)
	router.GET("/ads/autocomplete", handlers.Ad.Autocomplete)
	router.GET("/ads/:id", handlers.Ad.GetAd)
	router.GET("/categories", handlers.Category.ListCategories)

	// Ad submission (authenticated)
	router.POST("/ads", jwtMiddleware.Handle(), handlers.Ad.CreateAd)

	// Profile routes (authenticated)
	user := router.Group("/user")
	user.Use(jwtMiddleware.Handle())
	{
		user.GET("/profile", handlers.User.GetProfile)
		user.PATCH("/profile", handlers.User.UpdateProfile)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

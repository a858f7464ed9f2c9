package router

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sajidk24/recipeshare/backend/internal/chat"
	"github.com/sajidk24/recipeshare/backend/internal/handlers"
	"github.com/sajidk24/recipeshare/backend/internal/middleware"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/sajidk24/recipeshare/backend/internal/repositories"
	"github.com/sajidk24/recipeshare/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Favorite{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	mongoDB := mgClient.Database(cfg.MongoDatabase)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	chefRepo := repositories.NewMongoChefRepository(mongoDB)
	recipeRepo := repositories.NewMongoRecipeRepository(mongoDB)
	messageRepo := repositories.NewMongoMessageRepository(mongoDB)

	ctx := context.Background()
	if err := chefRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("Failed to create chef indexes: %v", err)
	}
	if err := messageRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("Failed to create message indexes: %v", err)
	}

	// Room registry for the chat relay, one per server process
	hub := chat.NewHub(messageRepo)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Uploaded recipe images
	e.Static("/uploads", cfg.UploadDir)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	chefHandler := handlers.NewChefHandler(chefRepo, userRepo)
	chefHandler.RegisterChefRoutes(api)
	log.Println("Chef routes configured.")

	recipeHandler := handlers.NewRecipeHandler(recipeRepo, cfg.UploadDir)
	recipeHandler.RegisterRecipeRoutes(api)
	log.Println("Recipe routes configured.")

	profileHandler := handlers.NewProfileHandler(chefRepo, userRepo, recipeRepo)
	profileHandler.RegisterProfileRoutes(api)
	log.Println("Profile routes configured.")

	chatHandler := handlers.NewChatHandler(messageRepo, hub)
	chatHandler.RegisterChatRoutes(api)
	log.Println("Chat routes configured.")

	// --- Admin routes ---
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(userRepo))
	adminHandler := handlers.NewAdminHandler(userRepo, recipeRepo)
	adminHandler.RegisterAdminRoutes(adminGroup)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}

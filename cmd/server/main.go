package main

import (
	"context"
	"errors"
	"log"
	"os"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/sajidk24/recipeshare/backend/internal/repositories"
	"github.com/sajidk24/recipeshare/backend/internal/router"
	"github.com/sajidk24/recipeshare/backend/pkg/config"
	"github.com/sajidk24/recipeshare/backend/pkg/firebase"
	"github.com/sajidk24/recipeshare/backend/validators"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Ensure the uploads directory exists
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Initialize Firebase; optional, firebase-login is disabled without it
	ctx := context.Background()
	var firebaseApp *firebase.App
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err = firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
	} else {
		log.Println("Firebase credentials not configured, firebase-login disabled.")
	}

	// Seed the default admin account
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	if err := seedAdminUser(userRepo); err != nil {
		log.Printf("Failed to seed admin user: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseAuthClient(firebaseApp))

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func firebaseAuthClient(app *firebase.App) *auth.Client {
	if app == nil {
		return nil
	}
	return app.AuthClient
}

// seedAdminUser creates the default admin account if it does not exist yet
func seedAdminUser(userRepo repositories.UserRepository) error {
	_, err := userRepo.GetUserByEmail("admin@gmail.com")
	if err == nil {
		log.Println("Admin user already exists")
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Admin",
		Email:    "admin@gmail.com",
		Password: string(hashed),
		IsAdmin:  true,
	}
	if err := userRepo.CreateUser(admin); err != nil {
		return err
	}
	log.Println("Default admin user created successfully")
	return nil
}

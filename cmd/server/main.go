package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pixelgram/backend/internal/router"
	"github.com/pixelgram/backend/pkg/config"
	"github.com/pixelgram/backend/pkg/firebase"
	"github.com/pixelgram/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	feedWindow := time.Duration(cfg.FeedWindowHours) * time.Hour
	router.SetupRoutes(e, db.Mongo.Database(cfg.MongoDatabase), firebaseApp.AuthClient, firebaseApp.Bucket, cfg.StorageBucket, feedWindow)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

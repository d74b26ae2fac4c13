package router

import (
	"log"
	"time"

	"cloud.google.com/go/storage"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pixelgram/backend/internal/handlers"
	"github.com/pixelgram/backend/internal/middleware"
	"github.com/pixelgram/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *mongo.Database, authClient *auth.Client, bucket *storage.BucketHandle, bucketName string, feedWindow time.Duration) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	postRepo := repositories.NewMongoPostRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, authClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require a Firebase ID token) ---
	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuthMiddleware(authClient))
	authHandler.RegisterSessionRoutes(api)
	log.Println("Firebase authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, postRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, userRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, feedWindow)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(userRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(postRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Media upload routes
	mediaHandler := handlers.NewMediaHandler(bucket, bucketName)
	mediaHandler.RegisterMediaRoutes(api)
	log.Println("Media routes configured.")

	log.Println("All routes configured.")
}

package firebase

import (
	"context"
	"fmt"
	"log"
	"os"

	cloudstorage "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app, auth client and storage bucket
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
	Bucket      *cloudstorage.BucketHandle
}

// InitFirebase initializes the Firebase application, the authentication
// client and the object-storage bucket used for media uploads
func InitFirebase(ctx context.Context, credentialsPath, storageBucket string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}
	if storageBucket == "" {
		return nil, fmt.Errorf("Firebase storage bucket not provided")
	}

	// Check if the credentials file exists
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("Firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: storageBucket}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	storageClient, err := firebaseApp.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}

	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error getting default storage bucket: %w", err)
	}

	log.Println("Firebase app, auth client and storage bucket initialized successfully!")
	return &App{FirebaseApp: firebaseApp, AuthClient: authClient, Bucket: bucket}, nil
}

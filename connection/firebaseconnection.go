package connection

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	cloudstorage "cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"firebase.google.com/go/messaging"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

// FirebaseClients bundles the service clients built from one Firebase
// app. Everything downstream takes these explicitly; there is no
// package-level client.
type FirebaseClients struct {
	Firestore  *firestore.Client
	Auth       *auth.Client
	Messaging  *messaging.Client
	Bucket     *cloudstorage.BucketHandle
	BucketName string
}

func FBConnection() (*FirebaseClients, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: No .env file found or failed to load") // Use only in dev
	}

	serviceAccountKeyPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if serviceAccountKeyPath == "" {
		return nil, fmt.Errorf("environment variable GOOGLE_APPLICATION_CREDENTIALS is not set")
	}
	bucketName := os.Getenv("STORAGE_BUCKET")

	ctx := context.Background()

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName},
		option.WithCredentialsFile(serviceAccountKeyPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Auth client: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}

	var bucket *cloudstorage.BucketHandle
	if bucketName != "" {
		storageClient, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error getting Storage client: %w", err)
		}
		bucket, err = storageClient.Bucket(bucketName)
		if err != nil {
			return nil, fmt.Errorf("error getting bucket %s: %w", bucketName, err)
		}
	}

	fmt.Println("Firebase connection successful")
	return &FirebaseClients{
		Firestore:  firestoreClient,
		Auth:       authClient,
		Messaging:  messagingClient,
		Bucket:     bucket,
		BucketName: bucketName,
	}, nil
}

package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Clients holds the authorized handles the publisher writes through.
type Clients struct {
	Firestore *firestore.Client
	Bucket    *storage.BucketHandle
}

// Settings identify the Firebase project and the service account used.
type Settings struct {
	CredentialsFile string
	ProjectID       string
	Bucket          string
}

// NewClients initialises a Firebase app from a service account key and
// opens Firestore and the default storage bucket.
func NewClients(ctx context.Context, s Settings) (*Clients, error) {
	if s.CredentialsFile == "" {
		return nil, errors.New("credentials file is empty")
	}
	if _, err := os.Stat(s.CredentialsFile); err != nil {
		return nil, fmt.Errorf("credentials file %s: %w", s.CredentialsFile, err)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     s.ProjectID,
		StorageBucket: s.Bucket,
	}, option.WithCredentialsFile(s.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	st, err := app.Storage(ctx)
	if err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	bucket, err := st.DefaultBucket()
	if err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("failed to open storage bucket %s: %w", s.Bucket, err)
	}

	return &Clients{Firestore: fs, Bucket: bucket}, nil
}

func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}

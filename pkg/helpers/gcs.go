package helpers

import (
	"context"
	"fmt"
	"net/url"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a storage client with read-write scope. An empty
// credsPath falls back to Application Default Credentials.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return client, nil
}

// PublicURL is the storage.googleapis.com address of an object in a publicly readable bucket.
func PublicURL(bucket, objectPath string) string {
	u := url.URL{Scheme: "https", Host: "storage.googleapis.com", Path: "/" + bucket + "/" + objectPath}
	return u.String()
}

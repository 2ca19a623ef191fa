package storage

import (
	"context"
	"errors"
	"io"
	"path"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
)

// GCS uploads photos into a Google Cloud Storage bucket.
type GCS struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func NewGCS(client *storage.Client, bucket string) *GCS {
	return &GCS{Client: client, Bucket: bucket, Prefix: "photos"}
}

func (g *GCS) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if g.Client == nil || g.Bucket == "" {
		return "", errors.New("gcs not configured")
	}
	objectPath := path.Join(g.Prefix, name)
	wc := g.Client.Bucket(g.Bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return helpers.PublicURL(g.Bucket, objectPath), nil
}

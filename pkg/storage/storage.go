// Package storage persists uploaded bootcamp photos.
package storage

import (
	"context"
	"io"
)

// FileStorage stores a named binary and returns the URL it is served from.
type FileStorage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

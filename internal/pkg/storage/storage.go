package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage stores reconciliation artifacts: archived device exports and
// rendered report workbooks. Retrieval happens over the static /uploads
// route, so the store only needs to write, remove and address files.
type FileStorage interface {
	// Upload writes a file and returns the path it is stored under.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL returns the download URL for a stored path.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

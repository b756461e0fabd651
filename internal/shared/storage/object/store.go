package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving, retrieving, and removing binary objects.
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// Delete removes a stored object. Uploaded resumes are transient: the
	// review flow deletes them once analysis finishes, pass or fail.
	Delete(ctx context.Context, storageKey string) error
	// Path resolves a storage key to a local filesystem path, if the store
	// is file-backed. Extraction reads page-oriented formats by path.
	Path(storageKey string) (string, error)
}

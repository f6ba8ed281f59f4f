package fleet

import (
	"context"
)

// ObjectStorage defines the interface for photo blob storage.
// Implementations live in the infrastructure layer.
type ObjectStorage interface {
	// PutObject stores a blob under the given key
	PutObject(ctx context.Context, key, contentType string, data []byte) error

	// DeleteObject removes a blob from storage. Deleting a missing key
	// is not an error.
	DeleteObject(ctx context.Context, key string) error

	// ObjectURL returns the public URL for a stored key ("" for "")
	ObjectURL(key string) string
}

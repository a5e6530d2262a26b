package document

import (
	"context"
	"time"
)

// BlobStorage is the port to the blob store backing documents. It is
// injected into services; implementations live in
// infrastructure/storage.
type BlobStorage interface {
	// Upload stores data under storageKey, overwriting any existing
	// object.
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	// DeleteObject removes the object. Deleting a missing object is not
	// an error.
	DeleteObject(ctx context.Context, storageKey string) error
	// ObjectExists reports whether the object is present.
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	// GenerateUploadURL returns a presigned PUT URL and its expiry.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// GenerateDownloadURL returns a presigned GET URL and its expiry.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	documentapp "github.com/workhub/backend/internal/application/document"
	"go.uber.org/zap"
)

// ErrPresignNotSupported is returned by backends that cannot issue
// presigned upload URLs.
var ErrPresignNotSupported = errors.New("presigned uploads are not supported by this storage backend")

// Ensure LocalBlobStorage implements BlobStorage
var _ documentapp.BlobStorage = (*LocalBlobStorage)(nil)

// LocalBlobStorage implements BlobStorage on the local filesystem.
// Intended for development and single-node deployments. Download URLs
// point at a static route the server mounts over the storage root.
type LocalBlobStorage struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

// LocalBlobStorageOption is a functional option for configuring LocalBlobStorage
type LocalBlobStorageOption func(*LocalBlobStorage)

// WithLocalLogger sets a custom logger for LocalBlobStorage
func WithLocalLogger(logger *zap.Logger) LocalBlobStorageOption {
	return func(l *LocalBlobStorage) {
		l.logger = logger
	}
}

// WithBaseURL sets the URL prefix used for download URLs
func WithBaseURL(baseURL string) LocalBlobStorageOption {
	return func(l *LocalBlobStorage) {
		l.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewLocalBlobStorage creates a LocalBlobStorage rooted at dir,
// creating the directory if needed.
func NewLocalBlobStorage(dir string, opts ...LocalBlobStorageOption) (*LocalBlobStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	storage := &LocalBlobStorage{
		root:    dir,
		baseURL: "/blobs",
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}

// pathFor resolves a storage key to a filesystem path, rejecting keys
// that would escape the storage root.
func (l *LocalBlobStorage) pathFor(storageKey string) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}
	clean := path.Clean("/" + storageKey)
	if clean == "/" {
		return "", errors.New("invalid storage key")
	}
	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

// Upload stores data under storageKey
func (l *LocalBlobStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	p, err := l.pathFor(storageKey)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	l.logger.Debug("Stored object", zap.String("key", storageKey), zap.Int("bytes", len(data)))
	return nil
}

// DeleteObject removes the object. Removing a missing key succeeds.
func (l *LocalBlobStorage) DeleteObject(ctx context.Context, storageKey string) error {
	p, err := l.pathFor(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectExists checks if an object exists in storage
func (l *LocalBlobStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	p, err := l.pathFor(storageKey)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return true, nil
}

// GenerateUploadURL is not supported on the filesystem backend.
// Clients must upload through the API instead.
func (l *LocalBlobStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	return "", time.Time{}, ErrPresignNotSupported
}

// GenerateDownloadURL returns a URL under the static blob route
func (l *LocalBlobStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if _, err := l.pathFor(storageKey); err != nil {
		return "", time.Time{}, err
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return l.baseURL + "/" + strings.TrimPrefix(storageKey, "/"), time.Now().Add(expiresIn), nil
}

// Root returns the directory the backend serves objects from.
func (l *LocalBlobStorage) Root() string {
	return l.root
}

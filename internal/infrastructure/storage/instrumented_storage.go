package storage

import (
	"context"
	"time"

	documentapp "github.com/workhub/backend/internal/application/document"
	"github.com/workhub/backend/internal/infrastructure/telemetry"
)

var _ documentapp.BlobStorage = (*InstrumentedBlobStorage)(nil)

// InstrumentedBlobStorage wraps a BlobStorage and records per-operation
// duration metrics.
type InstrumentedBlobStorage struct {
	inner   documentapp.BlobStorage
	backend string
	metrics *telemetry.WorkspaceMetrics
}

// NewInstrumentedBlobStorage decorates inner with metrics under the
// given backend label.
func NewInstrumentedBlobStorage(inner documentapp.BlobStorage, backend string, metrics *telemetry.WorkspaceMetrics) *InstrumentedBlobStorage {
	return &InstrumentedBlobStorage{
		inner:   inner,
		backend: backend,
		metrics: metrics,
	}
}

func (s *InstrumentedBlobStorage) record(ctx context.Context, operation string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordStorageOperation(ctx, s.backend, operation, time.Since(start), err)
	}
}

func (s *InstrumentedBlobStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	start := time.Now()
	err := s.inner.Upload(ctx, storageKey, data, contentType)
	s.record(ctx, "upload", start, err)
	return err
}

func (s *InstrumentedBlobStorage) DeleteObject(ctx context.Context, storageKey string) error {
	start := time.Now()
	err := s.inner.DeleteObject(ctx, storageKey)
	s.record(ctx, "delete", start, err)
	return err
}

func (s *InstrumentedBlobStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	start := time.Now()
	exists, err := s.inner.ObjectExists(ctx, storageKey)
	s.record(ctx, "head", start, err)
	return exists, err
}

func (s *InstrumentedBlobStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	start := time.Now()
	url, expiresAt, err := s.inner.GenerateUploadURL(ctx, storageKey, contentType, expiresIn)
	s.record(ctx, "presign_upload", start, err)
	return url, expiresAt, err
}

func (s *InstrumentedBlobStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	start := time.Now()
	url, expiresAt, err := s.inner.GenerateDownloadURL(ctx, storageKey, expiresIn)
	s.record(ctx, "presign_download", start, err)
	return url, expiresAt, err
}

// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a metrics constructor is given a nil meter.
var ErrMeterNil = errors.New("meter is required")

// WorkspaceMetrics provides business metrics for the workspace backend.
// It tracks entity writes, document transfer activity, and blob store health.
type WorkspaceMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	entityWritesTotal    *Counter
	documentUploadsTotal *Counter
	documentUploadBytes  *Counter
	documentDownloads    *Counter

	// Histogram metrics
	storageOpDuration *Histogram
}

// WorkspaceMetricsConfig holds configuration for workspace metrics.
type WorkspaceMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewWorkspaceMetrics creates a new WorkspaceMetrics instance.
func NewWorkspaceMetrics(cfg WorkspaceMetricsConfig) (*WorkspaceMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	wm := &WorkspaceMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	wm.entityWritesTotal, err = NewCounter(
		cfg.Meter,
		"workhub_entity_writes_total",
		"Total number of entity create/update/delete operations",
		"{operations}",
	)
	if err != nil {
		return nil, err
	}

	wm.documentUploadsTotal, err = NewCounter(
		cfg.Meter,
		"workhub_document_uploads_total",
		"Total number of document uploads",
		"{documents}",
	)
	if err != nil {
		return nil, err
	}

	wm.documentUploadBytes, err = NewCounter(
		cfg.Meter,
		"workhub_document_upload_bytes_total",
		"Total bytes uploaded to the blob store",
		"By",
	)
	if err != nil {
		return nil, err
	}

	wm.documentDownloads, err = NewCounter(
		cfg.Meter,
		"workhub_document_downloads_total",
		"Total number of document download URL issuances",
		"{downloads}",
	)
	if err != nil {
		return nil, err
	}

	wm.storageOpDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "workhub_storage_operation_duration_seconds",
		Description: "Duration of blob store operations",
		Unit:        "s",
		Boundaries:  StorageDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return wm, nil
}

// RecordEntityWrite records a create, update, or delete against a module.
// This should be called from the application layer after a successful write.
func (wm *WorkspaceMetrics) RecordEntityWrite(ctx context.Context, tenantID, module, operation string) {
	wm.entityWritesTotal.Inc(ctx,
		AttrTenantID.String(tenantID),
		AttrModule.String(module),
		AttrOperation.String(operation),
	)
}

// RecordDocumentUpload records a completed upload and its size.
func (wm *WorkspaceMetrics) RecordDocumentUpload(ctx context.Context, tenantID, contentType string, sizeBytes int64) {
	wm.documentUploadsTotal.Inc(ctx,
		AttrTenantID.String(tenantID),
		AttrContentType.String(contentType),
	)
	wm.documentUploadBytes.Add(ctx, sizeBytes,
		AttrTenantID.String(tenantID),
	)
}

// RecordDocumentDownload records a download URL issuance.
func (wm *WorkspaceMetrics) RecordDocumentDownload(ctx context.Context, tenantID string) {
	wm.documentDownloads.Inc(ctx, AttrTenantID.String(tenantID))
}

// RecordStorageOperation records the duration and outcome of a blob store call.
func (wm *WorkspaceMetrics) RecordStorageOperation(ctx context.Context, backend, operation string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	wm.storageOpDuration.RecordDuration(ctx, d,
		AttrStorageBackend.String(backend),
		AttrOperation.String(operation),
		AttrStatus.String(status),
	)
}

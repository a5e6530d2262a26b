package document

import (
	"context"

	"github.com/workhub/backend/internal/domain/shared"
)

// TypeCount is a per-content-type document tally
type TypeCount struct {
	ContentType string `json:"content_type"`
	Count       int64  `json:"count"`
}

// StorageTotals aggregates document usage for a tenant
type StorageTotals struct {
	DocumentCount int64       `json:"document_count"`
	TotalBytes    int64       `json:"total_bytes"`
	ByContentType []TypeCount `json:"by_content_type"`
}

// FolderRepository defines persistence operations for folders
type FolderRepository interface {
	Save(ctx context.Context, f *Folder) error
	FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*Folder, error)
	FindAllForTenant(ctx context.Context, tenantID string, parentID *uint, rootOnly bool) ([]Folder, error)
	Delete(ctx context.Context, tenantID string, id uint) error
	ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error)
	// ParentOf resolves the parent id of a folder, nil for roots.
	// Used by the reparent cycle guard.
	ParentOf(ctx context.Context, tenantID string, id uint) (*uint, error)
	CountChildren(ctx context.Context, tenantID string, id uint) (int64, error)
}

// Repository defines persistence operations for documents and shares
type Repository interface {
	Save(ctx context.Context, d *Document) error
	FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*Document, error)
	FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]Document, error)
	CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error)
	ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error)
	FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]Document, error)
	CountInFolder(ctx context.Context, tenantID string, folderID uint) (int64, error)
	// Delete removes the document row. The blob must already be gone.
	// Share rows are not cascaded; they stay behind as orphaned
	// references to the deleted document.
	Delete(ctx context.Context, tenantID string, id uint) error
	// IncrementDownloadCount bumps the counter atomically.
	IncrementDownloadCount(ctx context.Context, tenantID string, id uint) error
	Totals(ctx context.Context, tenantID string) (*StorageTotals, error)

	SaveShare(ctx context.Context, s *Share) error
	// FindSharesByDocument lists shares whose document still exists;
	// a deleted or unknown document id yields an empty list.
	FindSharesByDocument(ctx context.Context, tenantID string, documentID uint) ([]Share, error)
	FindShareByIDForTenant(ctx context.Context, tenantID string, shareID uint) (*Share, error)
	ShareExists(ctx context.Context, tenantID string, documentID, contactID uint) (bool, error)
	DeleteShare(ctx context.Context, tenantID string, shareID uint) error
}

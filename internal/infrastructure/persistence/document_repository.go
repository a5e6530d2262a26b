package persistence

import (
	"context"

	"github.com/workhub/backend/internal/domain/document"
	"github.com/workhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDocumentRepository implements document.Repository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Save creates or updates a document
func (r *GormDocumentRepository) Save(ctx context.Context, d *document.Document) error {
	return translateError(r.db.WithContext(ctx).Omit("UploadedBy").Save(d).Error)
}

// FindByIDForTenant finds a document by ID within a tenant,
// eager-loading the uploader
func (r *GormDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*document.Document, error) {
	var d document.Document
	if err := r.db.WithContext(ctx).
		Preload("UploadedBy").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&d).Error; err != nil {
		return nil, translateError(err)
	}
	return &d, nil
}

// FindAllForTenant finds all documents for a tenant matching the filter
func (r *GormDocumentRepository) FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]document.Document, error) {
	var docs []document.Document
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&document.Document{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	query = query.Order("created_at DESC, id DESC").Limit(filter.Limit).Offset(filter.Offset)

	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// CountForTenant counts documents for a tenant matching the filter
func (r *GormDocumentRepository) CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&document.Document{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsForTenant checks whether a document exists within a tenant
func (r *GormDocumentRepository) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&document.Document{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByIDsForTenant finds multiple documents by their IDs
func (r *GormDocumentRepository) FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]document.Document, error) {
	if len(ids) == 0 {
		return []document.Document{}, nil
	}
	var docs []document.Document
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("created_at DESC, id DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// CountInFolder counts documents directly inside a folder
func (r *GormDocumentRepository) CountInFolder(ctx context.Context, tenantID string, folderID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&document.Document{}).
		Where("tenant_id = ? AND folder_id = ?", tenantID, folderID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes the document row. Shares are deliberately not
// cascaded; their rows survive as orphaned references.
func (r *GormDocumentRepository) Delete(ctx context.Context, tenantID string, id uint) error {
	result := r.db.WithContext(ctx).Delete(&document.Document{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// IncrementDownloadCount bumps the counter atomically
func (r *GormDocumentRepository) IncrementDownloadCount(ctx context.Context, tenantID string, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&document.Document{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		UpdateColumn("download_count", gorm.Expr("download_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Totals aggregates document usage for a tenant
func (r *GormDocumentRepository) Totals(ctx context.Context, tenantID string) (*document.StorageTotals, error) {
	totals := &document.StorageTotals{ByContentType: []document.TypeCount{}}

	row := r.db.WithContext(ctx).
		Model(&document.Document{}).
		Select("COUNT(*) AS document_count, COALESCE(SUM(size_bytes), 0) AS total_bytes").
		Where("tenant_id = ?", tenantID).
		Row()
	if err := row.Scan(&totals.DocumentCount, &totals.TotalBytes); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&document.Document{}).
		Select("content_type, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("content_type").
		Order("count DESC").
		Scan(&totals.ByContentType).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// SaveShare creates or updates a share
func (r *GormDocumentRepository) SaveShare(ctx context.Context, s *document.Share) error {
	return translateError(r.db.WithContext(ctx).Omit("SharedWith").Save(s).Error)
}

// FindSharesByDocument lists shares of a document. Orphaned rows left
// behind by a document delete are filtered out, so an unknown or
// deleted document id yields an empty list.
func (r *GormDocumentRepository) FindSharesByDocument(ctx context.Context, tenantID string, documentID uint) ([]document.Share, error) {
	var shares []document.Share
	if err := r.db.WithContext(ctx).
		Preload("SharedWith").
		Where("tenant_id = ? AND document_id = ?", tenantID, documentID).
		Where("document_id IN (?)", r.db.Model(&document.Document{}).Select("id").Where("tenant_id = ?", tenantID)).
		Order("created_at ASC").
		Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

// FindShareByIDForTenant finds a share by ID within a tenant
func (r *GormDocumentRepository) FindShareByIDForTenant(ctx context.Context, tenantID string, shareID uint) (*document.Share, error) {
	var s document.Share
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, shareID).
		First(&s).Error; err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

// ShareExists checks whether a (document, contact) share already exists
func (r *GormDocumentRepository) ShareExists(ctx context.Context, tenantID string, documentID, contactID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&document.Share{}).
		Where("tenant_id = ? AND document_id = ? AND shared_with_id = ?", tenantID, documentID, contactID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteShare deletes a share within a tenant
func (r *GormDocumentRepository) DeleteShare(ctx context.Context, tenantID string, shareID uint) error {
	result := r.db.WithContext(ctx).Delete(&document.Share{}, "tenant_id = ? AND id = ?", tenantID, shareID)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies search and field filters to the query
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(filename) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "folder_id":
			// nil selects root-level documents
			if value == nil {
				query = query.Where("folder_id IS NULL")
			} else {
				query = query.Where("folder_id = ?", value)
			}
		case "uploaded_by":
			query = query.Where("uploaded_by_id = ?", value)
		case "content_type":
			query = query.Where("content_type = ?", value)
		case "is_archived":
			query = query.Where("is_archived = ?", value)
		}
	}
	return query
}

// Ensure GormDocumentRepository implements Repository
var _ document.Repository = (*GormDocumentRepository)(nil)

package persistence

import (
	"context"

	"github.com/workhub/backend/internal/domain/document"
	"github.com/workhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFolderRepository implements document.FolderRepository using GORM
type GormFolderRepository struct {
	db *gorm.DB
}

// NewGormFolderRepository creates a new GormFolderRepository
func NewGormFolderRepository(db *gorm.DB) *GormFolderRepository {
	return &GormFolderRepository{db: db}
}

// Save creates or updates a folder
func (r *GormFolderRepository) Save(ctx context.Context, f *document.Folder) error {
	return translateError(r.db.WithContext(ctx).Save(f).Error)
}

// FindByIDForTenant finds a folder by ID within a tenant
func (r *GormFolderRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*document.Folder, error) {
	var f document.Folder
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&f).Error; err != nil {
		return nil, translateError(err)
	}
	return &f, nil
}

// FindAllForTenant lists folders, optionally restricted to one parent
// or to roots only
func (r *GormFolderRepository) FindAllForTenant(ctx context.Context, tenantID string, parentID *uint, rootOnly bool) ([]document.Folder, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if parentID != nil {
		query = query.Where("parent_id = ?", *parentID)
	} else if rootOnly {
		query = query.Where("parent_id IS NULL")
	}

	var folders []document.Folder
	if err := query.Order("name ASC").Find(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

// Delete deletes a folder within a tenant
func (r *GormFolderRepository) Delete(ctx context.Context, tenantID string, id uint) error {
	result := r.db.WithContext(ctx).Delete(&document.Folder{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsForTenant checks whether a folder exists within a tenant
func (r *GormFolderRepository) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&document.Folder{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ParentOf resolves the parent id of a folder, nil for roots
func (r *GormFolderRepository) ParentOf(ctx context.Context, tenantID string, id uint) (*uint, error) {
	var f document.Folder
	if err := r.db.WithContext(ctx).
		Select("parent_id").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&f).Error; err != nil {
		return nil, translateError(err)
	}
	return f.ParentID, nil
}

// CountChildren counts direct subfolders of a folder
func (r *GormFolderRepository) CountChildren(ctx context.Context, tenantID string, id uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&document.Folder{}).
		Where("tenant_id = ? AND parent_id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormFolderRepository implements FolderRepository
var _ document.FolderRepository = (*GormFolderRepository)(nil)

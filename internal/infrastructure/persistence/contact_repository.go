package persistence

import (
	"context"

	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormContactRepository implements directory.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *directory.Contact) error {
	return translateError(r.db.WithContext(ctx).Save(contact).Error)
}

// FindByIDForTenant finds a contact by ID within a tenant
func (r *GormContactRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*directory.Contact, error) {
	var contact directory.Contact
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&contact).Error; err != nil {
		return nil, translateError(err)
	}
	return &contact, nil
}

// FindAllForTenant finds all contacts for a tenant matching the filter
func (r *GormContactRepository) FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]directory.Contact, error) {
	var contacts []directory.Contact
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&directory.Contact{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	query = query.Order("name ASC").Limit(filter.Limit).Offset(filter.Offset)

	if err := query.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// CountForTenant counts contacts for a tenant matching the filter
func (r *GormContactRepository) CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&directory.Contact{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a contact within a tenant
func (r *GormContactRepository) Delete(ctx context.Context, tenantID string, id uint) error {
	result := r.db.WithContext(ctx).Delete(&directory.Contact{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsForTenant checks whether a contact exists within a tenant
func (r *GormContactRepository) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&directory.Contact{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByType counts contacts per type for a tenant
func (r *GormContactRepository) CountByType(ctx context.Context, tenantID string) (map[directory.ContactType]int64, error) {
	type row struct {
		Type  directory.ContactType
		Count int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&directory.Contact{}).
		Select("type, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[directory.ContactType]int64, len(rows))
	for _, r := range rows {
		counts[r.Type] = r.Count
	}
	return counts, nil
}

// CountArchived counts archived contacts for a tenant
func (r *GormContactRepository) CountArchived(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&directory.Contact{}).
		Where("tenant_id = ? AND is_archived = ?", tenantID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search and field filters to the query
func (r *GormContactRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(company) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}
	for key, value := range filter.Filters {
		switch key {
		case "contact_type":
			query = query.Where("type = ?", value)
		case "company":
			query = query.Where("company = ?", value)
		case "is_archived":
			query = query.Where("is_archived = ?", value)
		}
	}
	return query
}

// Ensure GormContactRepository implements ContactRepository
var _ directory.ContactRepository = (*GormContactRepository)(nil)

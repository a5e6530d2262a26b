package persistence

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/workhub/backend/internal/domain/project"
	"github.com/workhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProjectRepository implements project.Repository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// SaveWithMembers writes the project and its member rows in one
// transaction
func (r *GormProjectRepository) SaveWithMembers(ctx context.Context, p *project.Project, members []project.Member) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Owner", "Members").Save(p).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].ProjectID = p.ID
			if err := tx.Omit("Contact").Save(&members[i]).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, p *project.Project) error {
	return translateError(r.db.WithContext(ctx).Omit("Owner", "Members").Save(p).Error)
}

// FindByIDForTenant finds a project by ID within a tenant, eager-loading
// owner and members with their contacts
func (r *GormProjectRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*project.Project, error) {
	var p project.Project
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members").
		Preload("Members.Contact").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&p).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// FindAllForTenant finds all projects for a tenant matching the filter
func (r *GormProjectRepository) FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]project.Project, error) {
	var projects []project.Project
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&project.Project{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	query = query.Preload("Owner").
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).Offset(filter.Offset)

	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// CountForTenant counts projects for a tenant matching the filter
func (r *GormProjectRepository) CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&project.Project{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsForTenant checks whether a project exists within a tenant
func (r *GormProjectRepository) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&project.Project{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteCascade removes the project with its members, links and
// activities in one transaction. Linked entities survive.
func (r *GormProjectRepository) DeleteCascade(ctx context.Context, tenantID string, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&project.Member{},
			&project.TaskLink{},
			&project.DocumentLink{},
			&project.EventLink{},
			&project.Activity{},
		} {
			if err := tx.Delete(model, "tenant_id = ? AND project_id = ?", tenantID, id).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&project.Project{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// SaveMember creates or updates a member
func (r *GormProjectRepository) SaveMember(ctx context.Context, m *project.Member) error {
	return translateError(r.db.WithContext(ctx).Omit("Contact").Save(m).Error)
}

// FindMember finds a member by project and contact
func (r *GormProjectRepository) FindMember(ctx context.Context, tenantID string, projectID, contactID uint) (*project.Member, error) {
	var m project.Member
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ? AND contact_id = ?", tenantID, projectID, contactID).
		First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

// MemberExists checks whether a (project, contact) pair already exists
func (r *GormProjectRepository) MemberExists(ctx context.Context, tenantID string, projectID, contactID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&project.Member{}).
		Where("tenant_id = ? AND project_id = ? AND contact_id = ?", tenantID, projectID, contactID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteMember removes a member row
func (r *GormProjectRepository) DeleteMember(ctx context.Context, tenantID string, projectID, contactID uint) error {
	result := r.db.WithContext(ctx).
		Delete(&project.Member{}, "tenant_id = ? AND project_id = ? AND contact_id = ?", tenantID, projectID, contactID)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountMembersWithRole counts members of a project holding a role
func (r *GormProjectRepository) CountMembersWithRole(ctx context.Context, tenantID string, projectID uint, role project.Role) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&project.Member{}).
		Where("tenant_id = ? AND project_id = ? AND role = ?", tenantID, projectID, role).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SaveLink inserts a link row of the given kind
func (r *GormProjectRepository) SaveLink(ctx context.Context, kind project.LinkKind, tenantID string, projectID, targetID uint) error {
	base := shared.TenantEntity{TenantID: tenantID}
	var err error
	switch kind {
	case project.LinkTask:
		err = r.db.WithContext(ctx).Create(&project.TaskLink{TenantEntity: base, ProjectID: projectID, TaskID: targetID}).Error
	case project.LinkDocument:
		err = r.db.WithContext(ctx).Create(&project.DocumentLink{TenantEntity: base, ProjectID: projectID, DocumentID: targetID}).Error
	case project.LinkEvent:
		err = r.db.WithContext(ctx).Create(&project.EventLink{TenantEntity: base, ProjectID: projectID, EventID: targetID}).Error
	default:
		return shared.ErrInvalidInput
	}
	return translateError(err)
}

// LinkExists checks whether a link of the given kind already exists
func (r *GormProjectRepository) LinkExists(ctx context.Context, kind project.LinkKind, tenantID string, projectID, targetID uint) (bool, error) {
	var count int64
	query := r.linkQuery(ctx, kind, tenantID, projectID, &targetID)
	if query == nil {
		return false, shared.ErrInvalidInput
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteLink removes a link row of the given kind
func (r *GormProjectRepository) DeleteLink(ctx context.Context, kind project.LinkKind, tenantID string, projectID, targetID uint) error {
	var result *gorm.DB
	switch kind {
	case project.LinkTask:
		result = r.db.WithContext(ctx).Delete(&project.TaskLink{}, "tenant_id = ? AND project_id = ? AND task_id = ?", tenantID, projectID, targetID)
	case project.LinkDocument:
		result = r.db.WithContext(ctx).Delete(&project.DocumentLink{}, "tenant_id = ? AND project_id = ? AND document_id = ?", tenantID, projectID, targetID)
	case project.LinkEvent:
		result = r.db.WithContext(ctx).Delete(&project.EventLink{}, "tenant_id = ? AND project_id = ? AND event_id = ?", tenantID, projectID, targetID)
	default:
		return shared.ErrInvalidInput
	}
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// LinkedIDs lists the target ids attached to a project for a kind
func (r *GormProjectRepository) LinkedIDs(ctx context.Context, kind project.LinkKind, tenantID string, projectID uint) ([]uint, error) {
	var ids []uint
	var err error
	switch kind {
	case project.LinkTask:
		err = r.db.WithContext(ctx).Model(&project.TaskLink{}).
			Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
			Pluck("task_id", &ids).Error
	case project.LinkDocument:
		err = r.db.WithContext(ctx).Model(&project.DocumentLink{}).
			Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
			Pluck("document_id", &ids).Error
	case project.LinkEvent:
		err = r.db.WithContext(ctx).Model(&project.EventLink{}).
			Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
			Pluck("event_id", &ids).Error
	default:
		return nil, shared.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountLinks tallies attached entities per kind
func (r *GormProjectRepository) CountLinks(ctx context.Context, tenantID string, projectID uint) (*project.LinkCounts, error) {
	counts := &project.LinkCounts{}
	if err := r.db.WithContext(ctx).Model(&project.TaskLink{}).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Count(&counts.Tasks).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&project.DocumentLink{}).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Count(&counts.Documents).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&project.EventLink{}).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Count(&counts.Events).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// AppendActivity inserts an audit row
func (r *GormProjectRepository) AppendActivity(ctx context.Context, a *project.Activity) error {
	return translateError(r.db.WithContext(ctx).Create(a).Error)
}

// FindActivities lists a project's audit trail, newest first
func (r *GormProjectRepository) FindActivities(ctx context.Context, tenantID string, projectID uint, filter shared.Filter) ([]project.Activity, error) {
	var activities []project.Activity
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// StatsForTenant aggregates project counts by status and the total
// budget of non-archived projects
func (r *GormProjectRepository) StatsForTenant(ctx context.Context, tenantID string) (*project.Stats, error) {
	type row struct {
		Status project.Status
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&project.Project{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &project.Stats{
		ByStatus:    make(map[project.Status]int64, len(rows)),
		TotalBudget: decimal.Zero,
	}
	for _, r := range rows {
		stats.ByStatus[r.Status] = r.Count
	}

	var budget decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&project.Project{}).
		Select("SUM(budget)").
		Where("tenant_id = ? AND is_archived = ? AND budget IS NOT NULL", tenantID, false).
		Scan(&budget).Error; err != nil {
		return nil, err
	}
	if budget.Valid {
		stats.TotalBudget = budget.Decimal
	}
	return stats, nil
}

// linkQuery builds a filtered query over one link table; targetID may be
// nil to match all links of the project.
func (r *GormProjectRepository) linkQuery(ctx context.Context, kind project.LinkKind, tenantID string, projectID uint, targetID *uint) *gorm.DB {
	switch kind {
	case project.LinkTask:
		q := r.db.WithContext(ctx).Model(&project.TaskLink{}).Where("tenant_id = ? AND project_id = ?", tenantID, projectID)
		if targetID != nil {
			q = q.Where("task_id = ?", *targetID)
		}
		return q
	case project.LinkDocument:
		q := r.db.WithContext(ctx).Model(&project.DocumentLink{}).Where("tenant_id = ? AND project_id = ?", tenantID, projectID)
		if targetID != nil {
			q = q.Where("document_id = ?", *targetID)
		}
		return q
	case project.LinkEvent:
		q := r.db.WithContext(ctx).Model(&project.EventLink{}).Where("tenant_id = ? AND project_id = ?", tenantID, projectID)
		if targetID != nil {
			q = q.Where("event_id = ?", *targetID)
		}
		return q
	default:
		return nil
	}
}

// applyFilter applies search and field filters to the query
func (r *GormProjectRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		case "is_archived":
			query = query.Where("is_archived = ?", value)
		}
	}
	return query
}

// Ensure GormProjectRepository implements Repository
var _ project.Repository = (*GormProjectRepository)(nil)

package persistence

import (
	"context"
	"time"

	"github.com/workhub/backend/internal/domain/shared"
	"github.com/workhub/backend/internal/domain/task"
	"gorm.io/gorm"
)

// GormTaskRepository implements task.Repository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// Save creates or updates a task
func (r *GormTaskRepository) Save(ctx context.Context, t *task.Task) error {
	return translateError(r.db.WithContext(ctx).Omit("Assignee", "Creator").Save(t).Error)
}

// FindByIDForTenant finds a task by ID within a tenant, eager-loading
// the assignee and creator
func (r *GormTaskRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*task.Task, error) {
	var t task.Task
	if err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Creator").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&t).Error; err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

// FindAllForTenant finds all tasks for a tenant matching the filter
func (r *GormTaskRepository) FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]task.Task, error) {
	var tasks []task.Task
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&task.Task{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	query = query.Preload("Assignee").
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).Offset(filter.Offset)

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountForTenant counts tasks for a tenant matching the filter
func (r *GormTaskRepository) CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&task.Task{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a task within a tenant
func (r *GormTaskRepository) Delete(ctx context.Context, tenantID string, id uint) error {
	result := r.db.WithContext(ctx).Delete(&task.Task{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsForTenant checks whether a task exists within a tenant
func (r *GormTaskRepository) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&task.Task{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByIDsForTenant finds multiple tasks by their IDs
func (r *GormTaskRepository) FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]task.Task, error) {
	if len(ids) == 0 {
		return []task.Task{}, nil
	}
	var tasks []task.Task
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByStatus counts tasks per status for a tenant
func (r *GormTaskRepository) CountByStatus(ctx context.Context, tenantID string) (map[task.Status]int64, error) {
	type row struct {
		Status task.Status
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&task.Task{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[task.Status]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// CountByPriority counts tasks per priority for a tenant
func (r *GormTaskRepository) CountByPriority(ctx context.Context, tenantID string) (map[task.Priority]int64, error) {
	type row struct {
		Priority task.Priority
		Count    int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&task.Task{}).
		Select("priority, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("priority").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[task.Priority]int64, len(rows))
	for _, r := range rows {
		counts[r.Priority] = r.Count
	}
	return counts, nil
}

// CountOverdue counts non-archived tasks past their deadline that are
// still in a non-terminal state
func (r *GormTaskRepository) CountOverdue(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	if err := r.overdueQuery(ctx, tenantID, time.Now()).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTaskRepository) overdueQuery(ctx context.Context, tenantID string, now time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&task.Task{}).
		Where("tenant_id = ?", tenantID).
		Where("deadline IS NOT NULL AND deadline < ?", now).
		Where("status NOT IN ?", []task.Status{task.StatusDone, task.StatusCancelled}).
		Where("is_archived = ?", false)
}

// applyFilter applies search and field filters to the query
func (r *GormTaskRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "assignee_id":
			query = query.Where("assignee_id = ?", value)
		case "is_archived":
			query = query.Where("is_archived = ?", value)
		case "overdue":
			if value == true {
				query = query.
					Where("deadline IS NOT NULL AND deadline < ?", time.Now()).
					Where("status NOT IN ?", []task.Status{task.StatusDone, task.StatusCancelled}).
					Where("is_archived = ?", false)
			}
		}
	}
	return query
}

// Ensure GormTaskRepository implements Repository
var _ task.Repository = (*GormTaskRepository)(nil)

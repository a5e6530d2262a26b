package task

import (
	"context"

	"github.com/workhub/backend/internal/domain/shared"
)

// Repository defines persistence operations for tasks
type Repository interface {
	Save(ctx context.Context, t *Task) error
	FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*Task, error)
	FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]Task, error)
	CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, tenantID string, id uint) error
	ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error)
	FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]Task, error)
	CountByStatus(ctx context.Context, tenantID string) (map[Status]int64, error)
	CountByPriority(ctx context.Context, tenantID string) (map[Priority]int64, error)
	CountOverdue(ctx context.Context, tenantID string) (int64, error)
}

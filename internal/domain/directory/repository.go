package directory

import (
	"context"

	"github.com/workhub/backend/internal/domain/shared"
)

// ContactRepository defines persistence operations for contacts
type ContactRepository interface {
	Save(ctx context.Context, contact *Contact) error
	FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*Contact, error)
	FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]Contact, error)
	CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, tenantID string, id uint) error
	ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error)
	CountByType(ctx context.Context, tenantID string) (map[ContactType]int64, error)
	CountArchived(ctx context.Context, tenantID string) (int64, error)
}

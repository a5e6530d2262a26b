package persistence

import (
	"context"

	"github.com/workhub/backend/internal/domain/messaging"
	"github.com/workhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMessageRepository implements messaging.Repository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Save creates or updates a message
func (r *GormMessageRepository) Save(ctx context.Context, m *messaging.Message) error {
	return translateError(r.db.WithContext(ctx).Omit("Sender").Save(m).Error)
}

// FindByIDForTenant finds a message by ID within a tenant, eager-loading
// the sender
func (r *GormMessageRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*messaging.Message, error) {
	var m messaging.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

// FindRootsByChannel lists thread roots in a channel, newest first
func (r *GormMessageRepository) FindRootsByChannel(ctx context.Context, tenantID, channel string, pinnedOnly bool, filter shared.Filter) ([]messaging.Message, error) {
	var msgs []messaging.Message
	query := r.rootsQuery(ctx, tenantID, channel, pinnedOnly).
		Preload("Sender").
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).Offset(filter.Offset)

	if err := query.Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// CountRootsByChannel counts thread roots in a channel
func (r *GormMessageRepository) CountRootsByChannel(ctx context.Context, tenantID, channel string, pinnedOnly bool) (int64, error) {
	var count int64
	if err := r.rootsQuery(ctx, tenantID, channel, pinnedOnly).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormMessageRepository) rootsQuery(ctx context.Context, tenantID, channel string, pinnedOnly bool) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Where("tenant_id = ? AND channel = ? AND parent_id IS NULL", tenantID, channel)
	if pinnedOnly {
		query = query.Where("is_pinned = ?", true)
	}
	return query
}

// FindThread returns the root and its direct children ordered by
// created_at ascending, id as tiebreak
func (r *GormMessageRepository) FindThread(ctx context.Context, tenantID string, rootID uint) ([]messaging.Message, error) {
	var msgs []messaging.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("tenant_id = ?", tenantID).
		Where("id = ? OR parent_id = ?", rootID, rootID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// DeleteAndPromoteChildren removes the message and clears parent_id on
// its children in one transaction
func (r *GormMessageRepository) DeleteAndPromoteChildren(ctx context.Context, tenantID string, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&messaging.Message{}).
			Where("tenant_id = ? AND parent_id = ?", tenantID, id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&messaging.Message{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ListChannels lists distinct channels with counts and last activity
func (r *GormMessageRepository) ListChannels(ctx context.Context, tenantID string) ([]messaging.ChannelSummary, error) {
	var summaries []messaging.ChannelSummary
	if err := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Select("channel, COUNT(*) AS message_count, MAX(created_at) AS last_activity").
		Where("tenant_id = ?", tenantID).
		Group("channel").
		Order("last_activity DESC").
		Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// Ensure GormMessageRepository implements Repository
var _ messaging.Repository = (*GormMessageRepository)(nil)

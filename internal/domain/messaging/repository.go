package messaging

import (
	"context"
	"time"

	"github.com/workhub/backend/internal/domain/shared"
)

// ChannelSummary aggregates activity for one channel
type ChannelSummary struct {
	Channel      string    `json:"channel"`
	MessageCount int64     `json:"message_count"`
	LastActivity time.Time `json:"last_activity"`
}

// Repository defines persistence operations for messages
type Repository interface {
	Save(ctx context.Context, m *Message) error
	FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*Message, error)
	// FindRootsByChannel lists thread roots in a channel, newest first.
	FindRootsByChannel(ctx context.Context, tenantID, channel string, pinnedOnly bool, filter shared.Filter) ([]Message, error)
	CountRootsByChannel(ctx context.Context, tenantID, channel string, pinnedOnly bool) (int64, error)
	// FindThread returns the root and its direct children ordered by
	// created_at ascending (id ascending as tiebreak).
	FindThread(ctx context.Context, tenantID string, rootID uint) ([]Message, error)
	// DeleteAndPromoteChildren removes the message and clears parent_id
	// on its children in one transaction.
	DeleteAndPromoteChildren(ctx context.Context, tenantID string, id uint) error
	ListChannels(ctx context.Context, tenantID string) ([]ChannelSummary, error)
}

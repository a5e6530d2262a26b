// Package messaging models channel messages with single-level threading:
// a message is either a root or a direct reply to a root.
package messaging

import (
	"strings"
	"time"

	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

// DefaultChannel is used when a message names no channel
const DefaultChannel = "general"

// MessageType distinguishes plain text from file and system notices
type MessageType string

const (
	TypeText   MessageType = "text"
	TypeFile   MessageType = "file"
	TypeSystem MessageType = "system"
)

// Message represents a single message in a named channel
type Message struct {
	shared.TenantEntity
	Channel     string             `gorm:"type:varchar(100);not null;index" json:"channel"`
	SenderID    uint               `gorm:"not null;index" json:"sender_id"`
	Sender      *directory.Contact `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	RecipientID *uint              `gorm:"index" json:"recipient_id,omitempty"`
	Recipient   *directory.Contact `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	Content     string             `gorm:"type:text;not null" json:"content"`
	MessageType MessageType        `gorm:"type:varchar(20);not null;default:'text'" json:"message_type"`
	ParentID    *uint              `gorm:"index" json:"parent_id,omitempty"`
	IsRead      bool               `gorm:"not null;default:false" json:"is_read"`
	IsPinned    bool               `gorm:"not null;default:false" json:"is_pinned"`
	EditedAt    *time.Time         `json:"edited_at,omitempty"`
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// NewMessage creates a message with required fields validated. An
// empty channel falls back to DefaultChannel.
func NewMessage(tenantID, channel string, senderID uint, content string) (*Message, error) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = DefaultChannel
	}
	if len(channel) > 100 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Channel cannot exceed 100 characters")
	}
	if senderID == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Sender is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Message content is required")
	}

	return &Message{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		Channel:      channel,
		SenderID:     senderID,
		Content:      content,
		MessageType:  TypeText,
	}, nil
}

// SetType changes the message type
func (m *Message) SetType(t MessageType) error {
	switch t {
	case TypeText, TypeFile, TypeSystem:
		m.MessageType = t
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid message type: "+string(t))
	}
}

// IsRoot reports whether the message starts a thread
func (m *Message) IsRoot() bool {
	return m.ParentID == nil
}

// Edit replaces the content and stamps the edit time
func (m *Message) Edit(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Message content is required")
	}
	now := time.Now()
	m.Content = content
	m.EditedAt = &now
	m.UpdatedAt = now
	return nil
}

// MarkRead flags the message as read. Marking twice is harmless.
func (m *Message) MarkRead() {
	m.IsRead = true
	m.UpdatedAt = time.Now()
}

// Pin marks the message as pinned in its channel
func (m *Message) Pin() {
	m.IsPinned = true
	m.UpdatedAt = time.Now()
}

// Unpin clears the pinned flag
func (m *Message) Unpin() {
	m.IsPinned = false
	m.UpdatedAt = time.Now()
}

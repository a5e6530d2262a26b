package messaging

import (
	"time"

	appdirectory "github.com/workhub/backend/internal/application/directory"
	"github.com/workhub/backend/internal/domain/messaging"
)

// PostMessageRequest represents a request to post a message. An empty
// channel lands in the default channel.
type PostMessageRequest struct {
	Channel     string `json:"channel" binding:"omitempty,max=100"`
	SenderID    uint   `json:"sender_id" binding:"required"`
	RecipientID *uint  `json:"recipient_id"`
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"message_type" binding:"omitempty,oneof=text file system"`
	ParentID    *uint  `json:"parent_id"`
}

// EditMessageRequest represents a request to edit message content
type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID          uint                          `json:"id"`
	TenantID    string                        `json:"tenant_id"`
	Channel     string                        `json:"channel"`
	SenderID    uint                          `json:"sender_id"`
	Sender      *appdirectory.ContactResponse `json:"sender,omitempty"`
	RecipientID *uint                         `json:"recipient_id,omitempty"`
	Content     string                        `json:"content"`
	MessageType string                        `json:"message_type"`
	ParentID    *uint                         `json:"parent_id,omitempty"`
	IsRead      bool                          `json:"is_read"`
	IsPinned    bool                          `json:"is_pinned"`
	EditedAt    *time.Time                    `json:"edited_at,omitempty"`
	CreatedAt   time.Time                     `json:"created_at"`
}

// ThreadResponse is a root message with its replies in posting order
type ThreadResponse struct {
	Root    MessageResponse   `json:"root"`
	Replies []MessageResponse `json:"replies"`
}

// ChannelListFilter represents filter options for channel message lists
type ChannelListFilter struct {
	PinnedOnly bool `form:"pinned_only"`
	Limit      int  `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset     int  `form:"offset" binding:"omitempty,min=0"`
}

// ChannelSummaryResponse describes one channel's activity
type ChannelSummaryResponse struct {
	Channel      string    `json:"channel"`
	MessageCount int64     `json:"message_count"`
	LastActivity time.Time `json:"last_activity"`
}

// ToMessageResponse converts a domain Message to MessageResponse
func ToMessageResponse(m *messaging.Message) MessageResponse {
	resp := MessageResponse{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Channel:     m.Channel,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		MessageType: string(m.MessageType),
		ParentID:    m.ParentID,
		IsRead:      m.IsRead,
		IsPinned:    m.IsPinned,
		EditedAt:    m.EditedAt,
		CreatedAt:   m.CreatedAt,
	}
	if m.Sender != nil {
		sender := appdirectory.ToContactResponse(m.Sender)
		resp.Sender = &sender
	}
	return resp
}

// ToMessageResponses converts a slice of domain Messages
func ToMessageResponses(messages []messaging.Message) []MessageResponse {
	out := make([]MessageResponse, len(messages))
	for i := range messages {
		out[i] = ToMessageResponse(&messages[i])
	}
	return out
}

// Package messaging implements application services for channel messages.
package messaging

import (
	"context"

	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/messaging"
	"github.com/workhub/backend/internal/domain/shared"
	"github.com/workhub/backend/internal/infrastructure/telemetry"
)

// MessageService handles message-related business operations
type MessageService struct {
	messageRepo messaging.Repository
	contactRepo directory.ContactRepository
	metrics     *telemetry.WorkspaceMetrics
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo messaging.Repository, contactRepo directory.ContactRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		contactRepo: contactRepo,
	}
}

// SetMetrics sets the workspace metrics collector
func (s *MessageService) SetMetrics(m *telemetry.WorkspaceMetrics) {
	s.metrics = m
}

func (s *MessageService) recordWrite(ctx context.Context, tenantID, operation string) {
	if s.metrics != nil {
		s.metrics.RecordEntityWrite(ctx, tenantID, "messages", operation)
	}
}

// Post creates a message, optionally as a reply to a thread root.
// Replies must target a root message in the same channel; threads are a
// single level deep.
func (s *MessageService) Post(ctx context.Context, tenantID string, req PostMessageRequest) (*MessageResponse, error) {
	exists, err := s.contactRepo.ExistsForTenant(ctx, tenantID, req.SenderID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Unknown sender contact")
	}

	m, err := messaging.NewMessage(tenantID, req.Channel, req.SenderID, req.Content)
	if err != nil {
		return nil, err
	}

	if req.RecipientID != nil {
		exists, err := s.contactRepo.ExistsForTenant(ctx, tenantID, *req.RecipientID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("NOT_FOUND", "Unknown recipient contact")
		}
		m.RecipientID = req.RecipientID
	}
	if req.MessageType != "" {
		if err := m.SetType(messaging.MessageType(req.MessageType)); err != nil {
			return nil, err
		}
	}

	if req.ParentID != nil {
		parent, err := s.messageRepo.FindByIDForTenant(ctx, tenantID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsRoot() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Replies can only target thread roots")
		}
		if parent.Channel != m.Channel {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Reply must stay in the parent's channel")
		}
		m.ParentID = req.ParentID
	}

	if err := s.messageRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "create")
	response := ToMessageResponse(m)
	return &response, nil
}

// GetByID retrieves a message by ID
func (s *MessageService) GetByID(ctx context.Context, tenantID string, messageID uint) (*MessageResponse, error) {
	m, err := s.messageRepo.FindByIDForTenant(ctx, tenantID, messageID)
	if err != nil {
		return nil, err
	}

	response := ToMessageResponse(m)
	return &response, nil
}

// ListChannel lists thread roots in a channel, newest first
func (s *MessageService) ListChannel(ctx context.Context, tenantID, channel string, filter ChannelListFilter) (*shared.Paginated[MessageResponse], error) {
	domainFilter := shared.Filter{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	domainFilter.Normalize()

	roots, err := s.messageRepo.FindRootsByChannel(ctx, tenantID, channel, filter.PinnedOnly, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.messageRepo.CountRootsByChannel(ctx, tenantID, channel, filter.PinnedOnly)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToMessageResponses(roots), total, domainFilter.Limit, domainFilter.Offset)
	return &page, nil
}

// GetThread returns a root message and its replies in posting order
func (s *MessageService) GetThread(ctx context.Context, tenantID string, rootID uint) (*ThreadResponse, error) {
	root, err := s.messageRepo.FindByIDForTenant(ctx, tenantID, rootID)
	if err != nil {
		return nil, err
	}
	if !root.IsRoot() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Message is a reply, not a thread root")
	}

	thread, err := s.messageRepo.FindThread(ctx, tenantID, rootID)
	if err != nil {
		return nil, err
	}

	resp := &ThreadResponse{Replies: []MessageResponse{}}
	for i := range thread {
		if thread[i].ID == rootID {
			resp.Root = ToMessageResponse(&thread[i])
			continue
		}
		resp.Replies = append(resp.Replies, ToMessageResponse(&thread[i]))
	}
	return resp, nil
}

// Edit replaces a message's content and stamps the edit time
func (s *MessageService) Edit(ctx context.Context, tenantID string, messageID uint, req EditMessageRequest) (*MessageResponse, error) {
	m, err := s.messageRepo.FindByIDForTenant(ctx, tenantID, messageID)
	if err != nil {
		return nil, err
	}

	if err := m.Edit(req.Content); err != nil {
		return nil, err
	}

	if err := s.messageRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToMessageResponse(m)
	return &response, nil
}

// MarkRead flags a message as read. Marking an already-read message is
// a no-op that still succeeds.
func (s *MessageService) MarkRead(ctx context.Context, tenantID string, messageID uint) (*MessageResponse, error) {
	m, err := s.messageRepo.FindByIDForTenant(ctx, tenantID, messageID)
	if err != nil {
		return nil, err
	}

	m.MarkRead()

	if err := s.messageRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToMessageResponse(m)
	return &response, nil
}

// Pin marks a message as pinned in its channel
func (s *MessageService) Pin(ctx context.Context, tenantID string, messageID uint) (*MessageResponse, error) {
	return s.setPinned(ctx, tenantID, messageID, true)
}

// Unpin clears a message's pinned flag
func (s *MessageService) Unpin(ctx context.Context, tenantID string, messageID uint) (*MessageResponse, error) {
	return s.setPinned(ctx, tenantID, messageID, false)
}

func (s *MessageService) setPinned(ctx context.Context, tenantID string, messageID uint, pinned bool) (*MessageResponse, error) {
	m, err := s.messageRepo.FindByIDForTenant(ctx, tenantID, messageID)
	if err != nil {
		return nil, err
	}

	if pinned {
		m.Pin()
	} else {
		m.Unpin()
	}

	if err := s.messageRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToMessageResponse(m)
	return &response, nil
}

// Delete removes a message. Replies to a deleted root are promoted to
// roots rather than deleted.
func (s *MessageService) Delete(ctx context.Context, tenantID string, messageID uint) error {
	if err := s.messageRepo.DeleteAndPromoteChildren(ctx, tenantID, messageID); err != nil {
		return err
	}
	s.recordWrite(ctx, tenantID, "delete")
	return nil
}

// ListChannels summarises every channel the tenant has posted to
func (s *MessageService) ListChannels(ctx context.Context, tenantID string) ([]ChannelSummaryResponse, error) {
	summaries, err := s.messageRepo.ListChannels(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]ChannelSummaryResponse, len(summaries))
	for i, summary := range summaries {
		out[i] = ChannelSummaryResponse{
			Channel:      summary.Channel,
			MessageCount: summary.MessageCount,
			LastActivity: summary.LastActivity,
		}
	}
	return out, nil
}

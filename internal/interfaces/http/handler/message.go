package handler

import (
	"github.com/gin-gonic/gin"
	messagingapp "github.com/workhub/backend/internal/application/messaging"
)

// MessageHandler handles channel message API endpoints
type MessageHandler struct {
	BaseHandler
	messageService *messagingapp.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *messagingapp.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// RegisterRoutes registers messaging routes on a tenant-scoped group
func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	messages := rg.Group("/messages")
	messages.POST("", h.Post)
	messages.GET("/:id", h.GetByID)
	messages.GET("/:id/thread", h.GetThread)
	messages.PUT("/:id", h.Edit)
	messages.POST("/:id/read", h.MarkRead)
	messages.POST("/:id/pin", h.Pin)
	messages.POST("/:id/unpin", h.Unpin)
	messages.DELETE("/:id", h.Delete)

	channels := rg.Group("/channels")
	channels.GET("", h.ListChannels)
	channels.GET("/:channel/messages", h.ListChannel)
}

// Post publishes a message to a channel, or a reply into a thread
func (h *MessageHandler) Post(c *gin.Context) {
	var req messagingapp.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	message, err := h.messageService.Post(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, message)
}

// GetByID retrieves a single message
func (h *MessageHandler) GetByID(c *gin.Context) {
	messageID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	message, err := h.messageService.GetByID(c.Request.Context(), getTenantID(c), messageID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, message)
}

// GetThread retrieves a root message with its replies
func (h *MessageHandler) GetThread(c *gin.Context) {
	messageID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	thread, err := h.messageService.GetThread(c.Request.Context(), getTenantID(c), messageID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, thread)
}

// Edit rewrites a message's content
func (h *MessageHandler) Edit(c *gin.Context) {
	messageID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	var req messagingapp.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	message, err := h.messageService.Edit(c.Request.Context(), getTenantID(c), messageID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, message)
}

// MarkRead flags a message as read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	messageID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	message, err := h.messageService.MarkRead(c.Request.Context(), getTenantID(c), messageID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, message)
}

// Pin pins a root message in its channel
func (h *MessageHandler) Pin(c *gin.Context) {
	h.setPinned(c, true)
}

// Unpin clears a message's pin
func (h *MessageHandler) Unpin(c *gin.Context) {
	h.setPinned(c, false)
}

func (h *MessageHandler) setPinned(c *gin.Context, pinned bool) {
	messageID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	var message *messagingapp.MessageResponse
	if pinned {
		message, err = h.messageService.Pin(c.Request.Context(), getTenantID(c), messageID)
	} else {
		message, err = h.messageService.Unpin(c.Request.Context(), getTenantID(c), messageID)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, message)
}

// Delete removes a message; replies are promoted to roots
func (h *MessageHandler) Delete(c *gin.Context) {
	messageID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), getTenantID(c), messageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListChannels lists the tenant's channels with message tallies
func (h *MessageHandler) ListChannels(c *gin.Context) {
	channels, err := h.messageService.ListChannels(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, channels)
}

// ListChannel lists the root messages of a channel
func (h *MessageHandler) ListChannel(c *gin.Context) {
	channel := c.Param("channel")
	if channel == "" {
		h.BadRequest(c, "Channel is required")
		return
	}

	var filter messagingapp.ChannelListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.messageService.ListChannel(c.Request.Context(), getTenantID(c), channel, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Limit, page.Offset)
}

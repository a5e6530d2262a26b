package handler

import (
	"github.com/gin-gonic/gin"
	directoryapp "github.com/workhub/backend/internal/application/directory"
)

// ContactHandler handles contact-related API endpoints
type ContactHandler struct {
	BaseHandler
	contactService *directoryapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *directoryapp.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// RegisterRoutes registers contact routes on a tenant-scoped group
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts")
	contacts.POST("", h.Create)
	contacts.GET("", h.List)
	contacts.GET("/stats", h.Stats)
	contacts.GET("/:id", h.GetByID)
	contacts.PUT("/:id", h.Update)
	contacts.DELETE("/:id", h.Delete)
	contacts.POST("/:id/archive", h.Archive)
	contacts.POST("/:id/unarchive", h.Unarchive)
}

// Create creates a new contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req directoryapp.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, contact)
}

// List retrieves contacts with filtering and pagination
func (h *ContactHandler) List(c *gin.Context) {
	var filter directoryapp.ContactListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.contactService.List(c.Request.Context(), getTenantID(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Limit, page.Offset)
}

// Stats returns contact counts for the tenant
func (h *ContactHandler) Stats(c *gin.Context) {
	stats, err := h.contactService.Stats(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetByID retrieves a contact by ID
func (h *ContactHandler) GetByID(c *gin.Context) {
	contactID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	contact, err := h.contactService.GetByID(c.Request.Context(), getTenantID(c), contactID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contact)
}

// Update updates a contact
func (h *ContactHandler) Update(c *gin.Context) {
	contactID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	var req directoryapp.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), getTenantID(c), contactID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contact)
}

// Delete removes a contact
func (h *ContactHandler) Delete(c *gin.Context) {
	contactID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), getTenantID(c), contactID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Archive marks a contact as archived
func (h *ContactHandler) Archive(c *gin.Context) {
	h.setArchived(c, true)
}

// Unarchive clears a contact's archived flag
func (h *ContactHandler) Unarchive(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *ContactHandler) setArchived(c *gin.Context, archived bool) {
	contactID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	var contact *directoryapp.ContactResponse
	if archived {
		contact, err = h.contactService.Archive(c.Request.Context(), getTenantID(c), contactID)
	} else {
		contact, err = h.contactService.Unarchive(c.Request.Context(), getTenantID(c), contactID)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contact)
}

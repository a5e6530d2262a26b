package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	calendarapp "github.com/workhub/backend/internal/application/calendar"
)

// EventHandler handles calendar API endpoints
type EventHandler struct {
	BaseHandler
	eventService *calendarapp.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *calendarapp.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// RegisterRoutes registers calendar routes on a tenant-scoped group
func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	events.POST("", h.Create)
	events.GET("", h.List)
	events.GET("/stats", h.Stats)
	events.GET("/:id", h.GetByID)
	events.GET("/:id/occurrences", h.Occurrences)
	events.PUT("/:id", h.Update)
	events.POST("/:id/cancel", h.Cancel)
	events.DELETE("/:id", h.Delete)
	events.POST("/:id/participants", h.AddParticipant)
	events.PUT("/:id/participants/:contact_id", h.Respond)
	events.DELETE("/:id/participants/:contact_id", h.RemoveParticipant)
	events.POST("/:id/reminders", h.CreateReminder)
	events.GET("/:id/reminders", h.ListReminders)
	events.DELETE("/:id/reminders/:reminder_id", h.DeleteReminder)

	calendar := rg.Group("/calendar")
	calendar.GET("/week", h.Week)
	calendar.GET("/month", h.Month)
}

// Create schedules a new event
func (h *EventHandler) Create(c *gin.Context) {
	var req calendarapp.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, event)
}

// List retrieves events with filtering and pagination
func (h *EventHandler) List(c *gin.Context) {
	var filter calendarapp.EventListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.eventService.List(c.Request.Context(), getTenantID(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Limit, page.Offset)
}

// Stats returns calendar tallies for the tenant
func (h *EventHandler) Stats(c *gin.Context) {
	stats, err := h.eventService.Stats(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetByID retrieves an event with its participants
func (h *EventHandler) GetByID(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), getTenantID(c), eventID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, event)
}

// Occurrences returns a recurrence parent with its occurrence instances
func (h *EventHandler) Occurrences(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	series, err := h.eventService.Occurrences(c.Request.Context(), getTenantID(c), eventID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, series)
}

// Update reschedules or edits an event
func (h *EventHandler) Update(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req calendarapp.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), getTenantID(c), eventID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, event)
}

// Cancel marks an event as cancelled without deleting it
func (h *EventHandler) Cancel(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.eventService.Cancel(c.Request.Context(), getTenantID(c), eventID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, event)
}

// Delete removes an event with its participants and reminders
func (h *EventHandler) Delete(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), getTenantID(c), eventID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddParticipant invites a contact to an event
func (h *EventHandler) AddParticipant(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req calendarapp.AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	participant, err := h.eventService.AddParticipant(c.Request.Context(), getTenantID(c), eventID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, participant)
}

// Respond records a participant's reply to an invitation
func (h *EventHandler) Respond(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}
	contactID, err := parseIDParam(c, "contact_id")
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	var req calendarapp.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	participant, err := h.eventService.Respond(c.Request.Context(), getTenantID(c), eventID, contactID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, participant)
}

// RemoveParticipant uninvites a contact
func (h *EventHandler) RemoveParticipant(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}
	contactID, err := parseIDParam(c, "contact_id")
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.eventService.RemoveParticipant(c.Request.Context(), getTenantID(c), eventID, contactID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateReminder schedules a reminder for an event
func (h *EventHandler) CreateReminder(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req calendarapp.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reminder, err := h.eventService.CreateReminder(c.Request.Context(), getTenantID(c), eventID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, reminder)
}

// ListReminders lists an event's reminders
func (h *EventHandler) ListReminders(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	reminders, err := h.eventService.ListReminders(c.Request.Context(), getTenantID(c), eventID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reminders)
}

// DeleteReminder removes a reminder
func (h *EventHandler) DeleteReminder(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}
	reminderID, err := parseIDParam(c, "reminder_id")
	if err != nil {
		h.BadRequest(c, "Invalid reminder ID")
		return
	}

	if err := h.eventService.DeleteReminder(c.Request.Context(), getTenantID(c), eventID, reminderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Week returns the current week's events, Monday through Sunday
func (h *EventHandler) Week(c *gin.Context) {
	window, err := h.eventService.Week(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, window)
}

// Month returns the events of a given month; defaults to the current one
func (h *EventHandler) Month(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid year")
			return
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			h.BadRequest(c, "Invalid month")
			return
		}
		month = time.Month(parsed)
	}

	window, err := h.eventService.Month(c.Request.Context(), getTenantID(c), year, month)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, window)
}

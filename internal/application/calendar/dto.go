package calendar

import (
	"time"

	appdirectory "github.com/workhub/backend/internal/application/directory"
	"github.com/workhub/backend/internal/domain/calendar"
)

// CreateEventRequest represents a request to create an event
type CreateEventRequest struct {
	Title          string     `json:"title" binding:"required,min=1,max=300"`
	Description    string     `json:"description"`
	Location       string     `json:"location" binding:"max=300"`
	StartsAt       time.Time  `json:"starts_at" binding:"required"`
	EndsAt         time.Time  `json:"ends_at" binding:"required"`
	AllDay         bool       `json:"all_day"`
	EventType      string     `json:"event_type" binding:"omitempty,oneof=meeting task_deadline reminder appointment holiday"`
	OrganizerID    *uint      `json:"organizer_id"`
	RecurrenceType string     `json:"recurrence_type" binding:"omitempty,oneof=none daily weekly monthly yearly"`
	RecurrenceEnd  *time.Time `json:"recurrence_end"`
	ParentEventID  *uint      `json:"parent_event_id"`
	RelatedTaskID  *uint      `json:"related_task_id"`
	ParticipantIDs []uint     `json:"participant_ids"`
}

// UpdateEventRequest represents a request to update an event
type UpdateEventRequest struct {
	Title          *string    `json:"title" binding:"omitempty,min=1,max=300"`
	Description    *string    `json:"description"`
	Location       *string    `json:"location" binding:"omitempty,max=300"`
	StartsAt       *time.Time `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at"`
	AllDay         *bool      `json:"all_day"`
	EventType      *string    `json:"event_type" binding:"omitempty,oneof=meeting task_deadline reminder appointment holiday"`
	RecurrenceType *string    `json:"recurrence_type" binding:"omitempty,oneof=none daily weekly monthly yearly"`
	RecurrenceEnd  *time.Time `json:"recurrence_end"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID             uint                  `json:"id"`
	TenantID       string                `json:"tenant_id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Location       string                `json:"location"`
	StartsAt       time.Time             `json:"starts_at"`
	EndsAt         time.Time             `json:"ends_at"`
	AllDay         bool                  `json:"all_day"`
	EventType      string                `json:"event_type"`
	OrganizerID    *uint                 `json:"organizer_id,omitempty"`
	RecurrenceType string                `json:"recurrence_type"`
	RecurrenceEnd  *time.Time            `json:"recurrence_end,omitempty"`
	ParentEventID  *uint                 `json:"parent_event_id,omitempty"`
	RelatedTaskID  *uint                 `json:"related_task_id,omitempty"`
	IsCancelled    bool                  `json:"is_cancelled"`
	Participants   []ParticipantResponse `json:"participants,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// EventListFilter represents filter options for event lists
type EventListFilter struct {
	Search           string     `form:"search"`
	IncludeCancelled bool       `form:"include_cancelled"`
	OrganizerID      uint       `form:"organizer_id"`
	From             *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To               *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit            int        `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset           int        `form:"offset" binding:"omitempty,min=0"`
}

// OccurrencesResponse is a recurrence parent with its occurrence
// instances, oldest first
type OccurrencesResponse struct {
	Root        EventResponse   `json:"root"`
	Occurrences []EventResponse `json:"occurrences"`
}

// AddParticipantRequest invites a contact to an event
type AddParticipantRequest struct {
	ContactID uint   `json:"contact_id" binding:"required"`
	Role      string `json:"role" binding:"omitempty,oneof=organizer attendee"`
	Response  string `json:"response" binding:"omitempty,oneof=invited accepted declined tentative"`
}

// RespondRequest records a participant's reply
type RespondRequest struct {
	Response string `json:"response" binding:"required,oneof=invited accepted declined tentative"`
}

// ParticipantResponse represents an event participant in API responses
type ParticipantResponse struct {
	ID        uint                          `json:"id"`
	EventID   uint                          `json:"event_id"`
	ContactID uint                          `json:"contact_id"`
	Contact   *appdirectory.ContactResponse `json:"contact,omitempty"`
	Role      string                        `json:"role"`
	Response  string                        `json:"response"`
}

// CreateReminderRequest schedules a reminder for an event
type CreateReminderRequest struct {
	RemindAt time.Time `json:"remind_at" binding:"required"`
	Method   string    `json:"method" binding:"omitempty,oneof=notification email"`
}

// ReminderResponse represents a reminder in API responses
type ReminderResponse struct {
	ID       uint      `json:"id"`
	EventID  uint      `json:"event_id"`
	RemindAt time.Time `json:"remind_at"`
	Method   string    `json:"method"`
	Sent     bool      `json:"sent"`
}

// CalendarResponse is a windowed view over events
type CalendarResponse struct {
	From   time.Time       `json:"from"`
	To     time.Time       `json:"to"`
	Events []EventResponse `json:"events"`
}

// EventStatsResponse aggregates calendar activity for a tenant
type EventStatsResponse struct {
	Upcoming  int64 `json:"upcoming"`
	ThisWeek  int64 `json:"this_week"`
	Cancelled int64 `json:"cancelled"`
}

// ToParticipantResponse converts a domain Participant
func ToParticipantResponse(p *calendar.Participant) ParticipantResponse {
	resp := ParticipantResponse{
		ID:        p.ID,
		EventID:   p.EventID,
		ContactID: p.ContactID,
		Role:      string(p.Role),
		Response:  string(p.Response),
	}
	if p.Contact != nil {
		contact := appdirectory.ToContactResponse(p.Contact)
		resp.Contact = &contact
	}
	return resp
}

// ToEventResponse converts a domain Event to EventResponse
func ToEventResponse(e *calendar.Event) EventResponse {
	resp := EventResponse{
		ID:             e.ID,
		TenantID:       e.TenantID,
		Title:          e.Title,
		Description:    e.Description,
		Location:       e.Location,
		StartsAt:       e.StartsAt,
		EndsAt:         e.EndsAt,
		AllDay:         e.AllDay,
		EventType:      string(e.EventType),
		OrganizerID:    e.OrganizerID,
		RecurrenceType: string(e.RecurrenceType),
		RecurrenceEnd:  e.RecurrenceEnd,
		ParentEventID:  e.ParentEventID,
		RelatedTaskID:  e.RelatedTaskID,
		IsCancelled:    e.IsCancelled,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	for i := range e.Participants {
		resp.Participants = append(resp.Participants, ToParticipantResponse(&e.Participants[i]))
	}
	return resp
}

// ToEventResponses converts a slice of domain Events
func ToEventResponses(events []calendar.Event) []EventResponse {
	out := make([]EventResponse, len(events))
	for i := range events {
		out[i] = ToEventResponse(&events[i])
	}
	return out
}

// ToReminderResponse converts a domain Reminder
func ToReminderResponse(r *calendar.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:       r.ID,
		EventID:  r.EventID,
		RemindAt: r.RemindAt,
		Method:   string(r.Method),
		Sent:     r.Sent,
	}
}

// ToReminderResponses converts a slice of domain Reminders
func ToReminderResponses(reminders []calendar.Reminder) []ReminderResponse {
	out := make([]ReminderResponse, len(reminders))
	for i := range reminders {
		out[i] = ToReminderResponse(&reminders[i])
	}
	return out
}

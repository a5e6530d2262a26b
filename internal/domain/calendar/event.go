// Package calendar models events, their participants and reminders.
package calendar

import (
	"strings"
	"time"

	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

// EventType categorizes a calendar entry
type EventType string

const (
	EventMeeting      EventType = "meeting"
	EventTaskDeadline EventType = "task_deadline"
	EventReminder     EventType = "reminder"
	EventAppointment  EventType = "appointment"
	EventHoliday      EventType = "holiday"
)

// RecurrenceType is the repeat cadence of a recurring event
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

// Event represents a calendar entry. Recurring events form a two-level
// chain: a recurrence parent and its occurrence instances, which point
// back via ParentEventID.
type Event struct {
	shared.TenantEntity
	Title          string             `gorm:"type:varchar(300);not null" json:"title"`
	Description    string             `gorm:"type:text" json:"description"`
	Location       string             `gorm:"type:varchar(300)" json:"location"`
	StartsAt       time.Time          `gorm:"not null;index" json:"starts_at"`
	EndsAt         time.Time          `gorm:"not null" json:"ends_at"`
	AllDay         bool               `gorm:"not null;default:false" json:"all_day"`
	EventType      EventType          `gorm:"type:varchar(20);not null;default:'meeting'" json:"event_type"`
	OrganizerID    *uint              `gorm:"index" json:"organizer_id,omitempty"`
	Organizer      *directory.Contact `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	RecurrenceType RecurrenceType     `gorm:"type:varchar(20);not null;default:'none'" json:"recurrence_type"`
	RecurrenceEnd  *time.Time         `json:"recurrence_end,omitempty"`
	ParentEventID  *uint              `gorm:"index" json:"parent_event_id,omitempty"`
	RelatedTaskID  *uint              `gorm:"index" json:"related_task_id,omitempty"`
	IsCancelled    bool               `gorm:"not null;default:false" json:"is_cancelled"`
	Participants   []Participant      `gorm:"foreignKey:EventID" json:"participants,omitempty"`
}

// TableName returns the table name for GORM
func (Event) TableName() string {
	return "events"
}

// NewEvent creates an event with its time pair validated
func NewEvent(tenantID, title string, startsAt, endsAt time.Time) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Event title is required")
	}
	if len(title) > 300 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Event title cannot exceed 300 characters")
	}
	if err := ValidateTimes(startsAt, endsAt); err != nil {
		return nil, err
	}
	return &Event{
		TenantEntity:   shared.TenantEntity{TenantID: tenantID},
		Title:          title,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		EventType:      EventMeeting,
		RecurrenceType: RecurrenceNone,
	}, nil
}

// IsOccurrence reports whether the event is an instance of a
// recurrence parent
func (e *Event) IsOccurrence() bool {
	return e.ParentEventID != nil
}

// SetEventType changes the event category
func (e *Event) SetEventType(t EventType) error {
	if err := ValidateEventType(t); err != nil {
		return err
	}
	e.EventType = t
	e.UpdatedAt = time.Now()
	return nil
}

// SetRecurrence updates the repeat cadence and its optional end date
func (e *Event) SetRecurrence(t RecurrenceType, end *time.Time) error {
	if err := ValidateRecurrenceType(t); err != nil {
		return err
	}
	e.RecurrenceType = t
	e.RecurrenceEnd = end
	e.UpdatedAt = time.Now()
	return nil
}

// Reschedule moves the event, re-validating the merged time pair
func (e *Event) Reschedule(startsAt, endsAt time.Time) error {
	if err := ValidateTimes(startsAt, endsAt); err != nil {
		return err
	}
	e.StartsAt = startsAt
	e.EndsAt = endsAt
	e.UpdatedAt = time.Now()
	return nil
}

// Cancel flags the event as cancelled; its rows are kept
func (e *Event) Cancel() {
	e.IsCancelled = true
	e.UpdatedAt = time.Now()
}

// ValidateTimes checks the event interval is non-empty
func ValidateTimes(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "Event start and end times are required")
	}
	if !endsAt.After(startsAt) {
		return shared.NewDomainError("VALIDATION_ERROR", "Event must end after it starts")
	}
	return nil
}

// ValidateEventType reports whether the type is a known value
func ValidateEventType(t EventType) error {
	switch t {
	case EventMeeting, EventTaskDeadline, EventReminder, EventAppointment, EventHoliday:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid event type: "+string(t))
	}
}

// ValidateRecurrenceType reports whether the cadence is a known value
func ValidateRecurrenceType(t RecurrenceType) error {
	switch t {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid recurrence type: "+string(t))
	}
}

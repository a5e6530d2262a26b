package calendar

import (
	"time"

	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

// ResponseStatus is a participant's reply to an invitation
type ResponseStatus string

const (
	ResponseInvited   ResponseStatus = "invited"
	ResponseAccepted  ResponseStatus = "accepted"
	ResponseDeclined  ResponseStatus = "declined"
	ResponseTentative ResponseStatus = "tentative"
)

// ParticipantRole is a participant's standing within an event
type ParticipantRole string

const (
	RoleOrganizer ParticipantRole = "organizer"
	RoleAttendee  ParticipantRole = "attendee"
)

// OrganizerDefaults captures the rule that an event's organizer is
// always a participant with the organizer role and counts as having
// accepted; everyone else joins as an invited attendee.
var OrganizerDefaults = shared.MembershipDefaults{
	ElevatedRole:  string(RoleOrganizer),
	DefaultRole:   string(RoleAttendee),
	ElevatedState: string(ResponseAccepted),
	DefaultState:  string(ResponseInvited),
}

// Participant links a contact to an event. The (event, contact) pair is
// unique, enforced by a composite index.
type Participant struct {
	shared.TenantEntity
	EventID   uint               `gorm:"not null;uniqueIndex:idx_participant_event_contact,priority:1" json:"event_id"`
	ContactID uint               `gorm:"not null;uniqueIndex:idx_participant_event_contact,priority:2" json:"contact_id"`
	Contact   *directory.Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Role      ParticipantRole    `gorm:"type:varchar(20);not null;default:'attendee'" json:"role"`
	Response  ResponseStatus     `gorm:"type:varchar(20);not null;default:'invited'" json:"response"`
}

// TableName returns the table name for GORM
func (Participant) TableName() string {
	return "event_participants"
}

// NewParticipant creates a participant with role and response validated
func NewParticipant(tenantID string, eventID, contactID uint, role ParticipantRole, response ResponseStatus) (*Participant, error) {
	if role == "" {
		role = RoleAttendee
	}
	if err := ValidateRole(role); err != nil {
		return nil, err
	}
	if response == "" {
		response = ResponseInvited
	}
	if err := ValidateResponse(response); err != nil {
		return nil, err
	}
	if contactID == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Contact is required")
	}
	return &Participant{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		EventID:      eventID,
		ContactID:    contactID,
		Role:         role,
		Response:     response,
	}, nil
}

// ValidateRole reports whether the role is a known value
func ValidateRole(r ParticipantRole) error {
	switch r {
	case RoleOrganizer, RoleAttendee:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid participant role: "+string(r))
	}
}

// Respond updates the participant's reply
func (p *Participant) Respond(response ResponseStatus) error {
	if err := ValidateResponse(response); err != nil {
		return err
	}
	p.Response = response
	p.UpdatedAt = time.Now()
	return nil
}

// ValidateResponse reports whether the response is a known value
func ValidateResponse(r ResponseStatus) error {
	switch r {
	case ResponseInvited, ResponseAccepted, ResponseDeclined, ResponseTentative:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid response status: "+string(r))
	}
}

// ReminderMethod is how a reminder is delivered
type ReminderMethod string

const (
	ReminderNotification ReminderMethod = "notification"
	ReminderEmail        ReminderMethod = "email"
)

// Reminder schedules a nudge ahead of an event
type Reminder struct {
	shared.TenantEntity
	EventID  uint           `gorm:"not null;index" json:"event_id"`
	RemindAt time.Time      `gorm:"not null" json:"remind_at"`
	Method   ReminderMethod `gorm:"type:varchar(20);not null;default:'notification'" json:"method"`
	Sent     bool           `gorm:"not null;default:false" json:"sent"`
}

// TableName returns the table name for GORM
func (Reminder) TableName() string {
	return "event_reminders"
}

// NewReminder creates a reminder with the method validated
func NewReminder(tenantID string, eventID uint, remindAt time.Time, method ReminderMethod) (*Reminder, error) {
	if remindAt.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Reminder time is required")
	}
	if method == "" {
		method = ReminderNotification
	}
	if method != ReminderNotification && method != ReminderEmail {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid reminder method: "+string(method))
	}
	return &Reminder{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		EventID:      eventID,
		RemindAt:     remindAt,
		Method:       method,
	}, nil
}

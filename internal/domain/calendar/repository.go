package calendar

import (
	"context"
	"time"

	"github.com/workhub/backend/internal/domain/shared"
)

// Stats aggregates calendar activity for a tenant
type Stats struct {
	Upcoming  int64 `json:"upcoming"`
	ThisWeek  int64 `json:"this_week"`
	Cancelled int64 `json:"cancelled"`
}

// Repository defines persistence operations for events, participants
// and reminders.
type Repository interface {
	// SaveWithParticipants writes the event and its participant rows in
	// one transaction.
	SaveWithParticipants(ctx context.Context, e *Event, participants []Participant) error
	Save(ctx context.Context, e *Event) error
	FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*Event, error)
	FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]Event, error)
	CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error)
	ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error)
	FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]Event, error)
	// FindInWindow lists non-cancelled events overlapping [from, to),
	// ordered by starts_at.
	FindInWindow(ctx context.Context, tenantID string, from, to time.Time) ([]Event, error)
	// FindOccurrences lists the direct occurrence instances of a
	// recurrence parent, oldest first.
	FindOccurrences(ctx context.Context, tenantID string, parentID uint) ([]Event, error)
	// DeleteCascade removes the event, its participants and reminders
	// in one transaction. Occurrence instances of a deleted parent are
	// promoted to standalone events.
	DeleteCascade(ctx context.Context, tenantID string, id uint) error

	SaveParticipant(ctx context.Context, p *Participant) error
	FindParticipant(ctx context.Context, tenantID string, eventID, contactID uint) (*Participant, error)
	ParticipantExists(ctx context.Context, tenantID string, eventID, contactID uint) (bool, error)
	DeleteParticipant(ctx context.Context, tenantID string, eventID, contactID uint) error

	SaveReminder(ctx context.Context, r *Reminder) error
	FindRemindersByEvent(ctx context.Context, tenantID string, eventID uint) ([]Reminder, error)
	FindReminderByIDForTenant(ctx context.Context, tenantID string, id uint) (*Reminder, error)
	DeleteReminder(ctx context.Context, tenantID string, id uint) error

	// StatsForTenant computes upcoming/this-week/cancelled counts
	// relative to now and weekStart ([weekStart, weekStart+7d)).
	StatsForTenant(ctx context.Context, tenantID string, now, weekStart time.Time) (*Stats, error)
}

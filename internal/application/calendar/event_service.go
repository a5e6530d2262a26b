// Package calendar implements application services for events,
// participants and reminders.
package calendar

import (
	"context"
	"strings"
	"time"

	"github.com/workhub/backend/internal/domain/calendar"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
	"github.com/workhub/backend/internal/infrastructure/telemetry"
)

// TaskSource resolves tasks referenced by events
type TaskSource interface {
	ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error)
}

// EventService handles calendar-related business operations
type EventService struct {
	eventRepo   calendar.Repository
	contactRepo directory.ContactRepository
	tasks       TaskSource
	metrics     *telemetry.WorkspaceMetrics
	now         func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(eventRepo calendar.Repository, contactRepo directory.ContactRepository, tasks TaskSource) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		contactRepo: contactRepo,
		tasks:       tasks,
		now:         time.Now,
	}
}

// SetMetrics sets the workspace metrics collector
func (s *EventService) SetMetrics(m *telemetry.WorkspaceMetrics) {
	s.metrics = m
}

func (s *EventService) recordWrite(ctx context.Context, tenantID, operation string) {
	if s.metrics != nil {
		s.metrics.RecordEntityWrite(ctx, tenantID, "events", operation)
	}
}

// WeekStartOf returns Monday 00:00 of the week containing t, in t's
// location. The week window is [WeekStartOf(t), +7d).
func WeekStartOf(t time.Time) time.Time {
	day := t.Truncate(0)
	weekday := int(day.Weekday())
	// time.Weekday puts Sunday at 0; shift so Monday opens the week
	offset := (weekday + 6) % 7
	year, month, dayOfMonth := day.Date()
	midnight := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, day.Location())
	return midnight.AddDate(0, 0, -offset)
}

// ensureRecurrenceParent verifies a recurrence parent exists and is
// itself a root; occurrence chains are a single level deep, mirroring
// message threads.
func (s *EventService) ensureRecurrenceParent(ctx context.Context, tenantID string, parentID uint) error {
	parent, err := s.eventRepo.FindByIDForTenant(ctx, tenantID, parentID)
	if err != nil {
		return err
	}
	if parent.IsOccurrence() {
		return shared.NewDomainError("VALIDATION_ERROR", "Occurrences can only target recurrence roots")
	}
	return nil
}

func (s *EventService) ensureContact(ctx context.Context, tenantID string, contactID uint, field string) error {
	exists, err := s.contactRepo.ExistsForTenant(ctx, tenantID, contactID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("NOT_FOUND", "Unknown "+field+" contact")
	}
	return nil
}

// Create creates an event with its participants in one transaction.
// The organizer is always included as a participant with the organizer
// role and counts as having accepted; everyone else joins as an
// invited attendee.
func (s *EventService) Create(ctx context.Context, tenantID string, req CreateEventRequest) (*EventResponse, error) {
	e, err := calendar.NewEvent(tenantID, req.Title, req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}
	e.Description = req.Description
	e.Location = req.Location
	e.AllDay = req.AllDay
	if req.EventType != "" {
		if err := e.SetEventType(calendar.EventType(req.EventType)); err != nil {
			return nil, err
		}
	}
	if req.RecurrenceType != "" {
		if err := e.SetRecurrence(calendar.RecurrenceType(req.RecurrenceType), req.RecurrenceEnd); err != nil {
			return nil, err
		}
	}

	if req.ParentEventID != nil {
		if err := s.ensureRecurrenceParent(ctx, tenantID, *req.ParentEventID); err != nil {
			return nil, err
		}
		e.ParentEventID = req.ParentEventID
	}
	if req.RelatedTaskID != nil {
		exists, err := s.tasks.ExistsForTenant(ctx, tenantID, *req.RelatedTaskID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("NOT_FOUND", "Unknown related task")
		}
		e.RelatedTaskID = req.RelatedTaskID
	}

	var organizerID uint
	if req.OrganizerID != nil {
		if err := s.ensureContact(ctx, tenantID, *req.OrganizerID, "organizer"); err != nil {
			return nil, err
		}
		e.OrganizerID = req.OrganizerID
		organizerID = *req.OrganizerID
	}

	participantIDs := shared.EnsureMember(req.ParticipantIDs, organizerID)
	participants := make([]calendar.Participant, 0, len(participantIDs))
	for _, contactID := range participantIDs {
		if contactID != organizerID {
			if err := s.ensureContact(ctx, tenantID, contactID, "participant"); err != nil {
				return nil, err
			}
		}
		role := calendar.ParticipantRole(calendar.OrganizerDefaults.RoleFor(contactID, organizerID))
		response := calendar.ResponseStatus(calendar.OrganizerDefaults.StateFor(contactID, organizerID))
		p, err := calendar.NewParticipant(tenantID, 0, contactID, role, response)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}

	if err := s.eventRepo.SaveWithParticipants(ctx, e, participants); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "create")
	response := ToEventResponse(e)
	return &response, nil
}

// GetByID retrieves an event by ID with its participants
func (s *EventService) GetByID(ctx context.Context, tenantID string, eventID uint) (*EventResponse, error) {
	e, err := s.eventRepo.FindByIDForTenant(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}

	response := ToEventResponse(e)
	return &response, nil
}

// List retrieves events with filtering and pagination
func (s *EventService) List(ctx context.Context, tenantID string, filter EventListFilter) (*shared.Paginated[EventResponse], error) {
	domainFilter := shared.Filter{
		Limit:   filter.Limit,
		Offset:  filter.Offset,
		Search:  filter.Search,
		Filters: make(map[string]interface{}),
	}
	domainFilter.Normalize()

	if filter.IncludeCancelled {
		domainFilter.Filters["include_cancelled"] = true
	}
	if filter.OrganizerID != 0 {
		domainFilter.Filters["organizer_id"] = filter.OrganizerID
	}
	if filter.From != nil {
		domainFilter.Filters["from"] = *filter.From
	}
	if filter.To != nil {
		domainFilter.Filters["to"] = *filter.To
	}

	events, err := s.eventRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.eventRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToEventResponses(events), total, domainFilter.Limit, domainFilter.Offset)
	return &page, nil
}

// Update updates an event. Partial time updates re-validate the merged
// interval.
func (s *EventService) Update(ctx context.Context, tenantID string, eventID uint, req UpdateEventRequest) (*EventResponse, error) {
	e, err := s.eventRepo.FindByIDForTenant(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Event title is required")
		}
		e.Title = title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.AllDay != nil {
		e.AllDay = *req.AllDay
	}
	if req.EventType != nil {
		if err := e.SetEventType(calendar.EventType(*req.EventType)); err != nil {
			return nil, err
		}
	}
	if req.RecurrenceType != nil || req.RecurrenceEnd != nil {
		recType := e.RecurrenceType
		recEnd := e.RecurrenceEnd
		if req.RecurrenceType != nil {
			recType = calendar.RecurrenceType(*req.RecurrenceType)
		}
		if req.RecurrenceEnd != nil {
			recEnd = req.RecurrenceEnd
		}
		if err := e.SetRecurrence(recType, recEnd); err != nil {
			return nil, err
		}
	}
	if req.StartsAt != nil || req.EndsAt != nil {
		startsAt := e.StartsAt
		endsAt := e.EndsAt
		if req.StartsAt != nil {
			startsAt = *req.StartsAt
		}
		if req.EndsAt != nil {
			endsAt = *req.EndsAt
		}
		if err := e.Reschedule(startsAt, endsAt); err != nil {
			return nil, err
		}
	}

	if err := s.eventRepo.Save(ctx, e); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToEventResponse(e)
	return &response, nil
}

// Cancel flags an event as cancelled without deleting any rows
func (s *EventService) Cancel(ctx context.Context, tenantID string, eventID uint) (*EventResponse, error) {
	e, err := s.eventRepo.FindByIDForTenant(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}

	e.Cancel()

	if err := s.eventRepo.Save(ctx, e); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToEventResponse(e)
	return &response, nil
}

// Occurrences returns a recurrence parent and its occurrence instances
// in creation order, one level deep.
func (s *EventService) Occurrences(ctx context.Context, tenantID string, eventID uint) (*OccurrencesResponse, error) {
	root, err := s.eventRepo.FindByIDForTenant(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}
	if root.IsOccurrence() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Event is an occurrence, not a recurrence root")
	}

	children, err := s.eventRepo.FindOccurrences(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}

	return &OccurrencesResponse{
		Root:        ToEventResponse(root),
		Occurrences: ToEventResponses(children),
	}, nil
}

// Delete removes an event with its participants and reminders.
// Occurrences of a deleted recurrence parent are promoted to
// standalone events rather than deleted.
func (s *EventService) Delete(ctx context.Context, tenantID string, eventID uint) error {
	if err := s.eventRepo.DeleteCascade(ctx, tenantID, eventID); err != nil {
		return err
	}
	s.recordWrite(ctx, tenantID, "delete")
	return nil
}

// AddParticipant invites a contact to an event
func (s *EventService) AddParticipant(ctx context.Context, tenantID string, eventID uint, req AddParticipantRequest) (*ParticipantResponse, error) {
	exists, err := s.eventRepo.ExistsForTenant(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	if err := s.ensureContact(ctx, tenantID, req.ContactID, "participant"); err != nil {
		return nil, err
	}

	// Fast path; the composite unique index is authoritative under races
	already, err := s.eventRepo.ParticipantExists(ctx, tenantID, eventID, req.ContactID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, shared.ErrAlreadyExists
	}

	p, err := calendar.NewParticipant(tenantID, eventID, req.ContactID, calendar.ParticipantRole(req.Role), calendar.ResponseStatus(req.Response))
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.SaveParticipant(ctx, p); err != nil {
		return nil, err
	}

	response := ToParticipantResponse(p)
	return &response, nil
}

// Respond records a participant's reply to an invitation
func (s *EventService) Respond(ctx context.Context, tenantID string, eventID, contactID uint, req RespondRequest) (*ParticipantResponse, error) {
	p, err := s.eventRepo.FindParticipant(ctx, tenantID, eventID, contactID)
	if err != nil {
		return nil, err
	}

	if err := p.Respond(calendar.ResponseStatus(req.Response)); err != nil {
		return nil, err
	}

	if err := s.eventRepo.SaveParticipant(ctx, p); err != nil {
		return nil, err
	}

	response := ToParticipantResponse(p)
	return &response, nil
}

// RemoveParticipant uninvites a contact from an event
func (s *EventService) RemoveParticipant(ctx context.Context, tenantID string, eventID, contactID uint) error {
	return s.eventRepo.DeleteParticipant(ctx, tenantID, eventID, contactID)
}

// CreateReminder schedules a reminder for an event
func (s *EventService) CreateReminder(ctx context.Context, tenantID string, eventID uint, req CreateReminderRequest) (*ReminderResponse, error) {
	exists, err := s.eventRepo.ExistsForTenant(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	r, err := calendar.NewReminder(tenantID, eventID, req.RemindAt, calendar.ReminderMethod(req.Method))
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.SaveReminder(ctx, r); err != nil {
		return nil, err
	}

	response := ToReminderResponse(r)
	return &response, nil
}

// ListReminders lists reminders of an event
func (s *EventService) ListReminders(ctx context.Context, tenantID string, eventID uint) ([]ReminderResponse, error) {
	exists, err := s.eventRepo.ExistsForTenant(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	reminders, err := s.eventRepo.FindRemindersByEvent(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}
	return ToReminderResponses(reminders), nil
}

// DeleteReminder removes a reminder from an event
func (s *EventService) DeleteReminder(ctx context.Context, tenantID string, eventID, reminderID uint) error {
	r, err := s.eventRepo.FindReminderByIDForTenant(ctx, tenantID, reminderID)
	if err != nil {
		return err
	}
	if r.EventID != eventID {
		return shared.ErrNotFound
	}
	return s.eventRepo.DeleteReminder(ctx, tenantID, reminderID)
}

// Week returns the non-cancelled events of the current week, a
// half-open window opening Monday 00:00.
func (s *EventService) Week(ctx context.Context, tenantID string) (*CalendarResponse, error) {
	from := WeekStartOf(s.now())
	to := from.AddDate(0, 0, 7)
	return s.window(ctx, tenantID, from, to)
}

// Month returns the non-cancelled events of one calendar month
func (s *EventService) Month(ctx context.Context, tenantID string, year int, month time.Month) (*CalendarResponse, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid calendar month")
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return s.window(ctx, tenantID, from, to)
}

func (s *EventService) window(ctx context.Context, tenantID string, from, to time.Time) (*CalendarResponse, error) {
	events, err := s.eventRepo.FindInWindow(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	return &CalendarResponse{
		From:   from,
		To:     to,
		Events: ToEventResponses(events),
	}, nil
}

// Stats aggregates calendar activity for a tenant. An unknown tenant
// yields zeroes, not an error.
func (s *EventService) Stats(ctx context.Context, tenantID string) (*EventStatsResponse, error) {
	now := s.now()
	stats, err := s.eventRepo.StatsForTenant(ctx, tenantID, now, WeekStartOf(now))
	if err != nil {
		return nil, err
	}
	return &EventStatsResponse{
		Upcoming:  stats.Upcoming,
		ThisWeek:  stats.ThisWeek,
		Cancelled: stats.Cancelled,
	}, nil
}

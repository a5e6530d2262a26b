package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workhub/backend/internal/domain/calendar"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

// MockEventRepository is a mock implementation of calendar.Repository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) SaveWithParticipants(ctx context.Context, e *calendar.Event, participants []calendar.Participant) error {
	args := m.Called(ctx, e, participants)
	return args.Error(0)
}

func (m *MockEventRepository) Save(ctx context.Context, e *calendar.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*calendar.Event, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Event), args.Error(1)
}

func (m *MockEventRepository) FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]calendar.Event, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]calendar.Event), args.Error(1)
}

func (m *MockEventRepository) CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]calendar.Event, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]calendar.Event), args.Error(1)
}

func (m *MockEventRepository) FindInWindow(ctx context.Context, tenantID string, from, to time.Time) ([]calendar.Event, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]calendar.Event), args.Error(1)
}

func (m *MockEventRepository) FindOccurrences(ctx context.Context, tenantID string, parentID uint) ([]calendar.Event, error) {
	args := m.Called(ctx, tenantID, parentID)
	return args.Get(0).([]calendar.Event), args.Error(1)
}

func (m *MockEventRepository) DeleteCascade(ctx context.Context, tenantID string, id uint) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockEventRepository) SaveParticipant(ctx context.Context, p *calendar.Participant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockEventRepository) FindParticipant(ctx context.Context, tenantID string, eventID, contactID uint) (*calendar.Participant, error) {
	args := m.Called(ctx, tenantID, eventID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Participant), args.Error(1)
}

func (m *MockEventRepository) ParticipantExists(ctx context.Context, tenantID string, eventID, contactID uint) (bool, error) {
	args := m.Called(ctx, tenantID, eventID, contactID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) DeleteParticipant(ctx context.Context, tenantID string, eventID, contactID uint) error {
	args := m.Called(ctx, tenantID, eventID, contactID)
	return args.Error(0)
}

func (m *MockEventRepository) SaveReminder(ctx context.Context, r *calendar.Reminder) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockEventRepository) FindRemindersByEvent(ctx context.Context, tenantID string, eventID uint) ([]calendar.Reminder, error) {
	args := m.Called(ctx, tenantID, eventID)
	return args.Get(0).([]calendar.Reminder), args.Error(1)
}

func (m *MockEventRepository) FindReminderByIDForTenant(ctx context.Context, tenantID string, id uint) (*calendar.Reminder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Reminder), args.Error(1)
}

func (m *MockEventRepository) DeleteReminder(ctx context.Context, tenantID string, id uint) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockEventRepository) StatsForTenant(ctx context.Context, tenantID string, now, weekStart time.Time) (*calendar.Stats, error) {
	args := m.Called(ctx, tenantID, now, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Stats), args.Error(1)
}

// MockContactLookup is a mock implementation of directory.ContactRepository
type MockContactLookup struct {
	mock.Mock
}

func (m *MockContactLookup) Save(ctx context.Context, contact *directory.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactLookup) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*directory.Contact, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Contact), args.Error(1)
}

func (m *MockContactLookup) FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]directory.Contact, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]directory.Contact), args.Error(1)
}

func (m *MockContactLookup) CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContactLookup) Delete(ctx context.Context, tenantID string, id uint) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockContactLookup) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactLookup) CountByType(ctx context.Context, tenantID string) (map[directory.ContactType]int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(map[directory.ContactType]int64), args.Error(1)
}

func (m *MockContactLookup) CountArchived(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTaskLookup is a mock implementation of TaskSource
type MockTaskLookup struct {
	mock.Mock
}

func (m *MockTaskLookup) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func TestWeekStartOf(t *testing.T) {
	// Wednesday 2026-03-11 15:30 UTC
	wednesday := time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), WeekStartOf(wednesday))

	// Sunday belongs to the week that began the previous Monday
	sunday := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), WeekStartOf(sunday))

	// Monday midnight is its own week start
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStartOf(monday))
}

func TestEventServiceCreateOrganizerBecomesParticipant(t *testing.T) {
	repo := new(MockEventRepository)
	contacts := new(MockContactLookup)
	service := NewEventService(repo, contacts, new(MockTaskLookup))
	ctx := context.Background()

	organizer := uint(1)
	contacts.On("ExistsForTenant", ctx, "acme", uint(1)).Return(true, nil)
	contacts.On("ExistsForTenant", ctx, "acme", uint(2)).Return(true, nil)

	var captured []calendar.Participant
	repo.On("SaveWithParticipants", ctx, mock.AnythingOfType("*calendar.Event"), mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).([]calendar.Participant)
		}).
		Return(nil)

	starts := time.Now().Add(24 * time.Hour)
	_, err := service.Create(ctx, "acme", CreateEventRequest{
		Title:          "Kickoff",
		StartsAt:       starts,
		EndsAt:         starts.Add(time.Hour),
		OrganizerID:    &organizer,
		ParticipantIDs: []uint{2},
	})

	require.NoError(t, err)
	require.Len(t, captured, 2)
	byContact := make(map[uint]calendar.Participant)
	for _, p := range captured {
		byContact[p.ContactID] = p
	}
	assert.Equal(t, calendar.ResponseInvited, byContact[2].Response)
	assert.Equal(t, calendar.RoleAttendee, byContact[2].Role)
	assert.Equal(t, calendar.ResponseAccepted, byContact[1].Response, "organizer auto-accepts")
	assert.Equal(t, calendar.RoleOrganizer, byContact[1].Role)
}

func TestEventServiceCreateRecurrenceParentMustBeRoot(t *testing.T) {
	repo := new(MockEventRepository)
	contacts := new(MockContactLookup)
	service := NewEventService(repo, contacts, new(MockTaskLookup))
	ctx := context.Background()

	starts := time.Now().Add(24 * time.Hour)
	grandparent := uint(4)
	parent, err := calendar.NewEvent("acme", "Weekly sync", starts, starts.Add(time.Hour))
	require.NoError(t, err)
	parent.ID = 8
	parent.ParentEventID = &grandparent

	repo.On("FindByIDForTenant", ctx, "acme", uint(8)).Return(parent, nil)

	_, err = service.Create(ctx, "acme", CreateEventRequest{
		Title:         "Weekly sync",
		StartsAt:      starts.AddDate(0, 0, 7),
		EndsAt:        starts.AddDate(0, 0, 7).Add(time.Hour),
		ParentEventID: &parent.ID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	repo.AssertNotCalled(t, "SaveWithParticipants")
}

func TestEventServiceCreateUnknownRelatedTask(t *testing.T) {
	repo := new(MockEventRepository)
	contacts := new(MockContactLookup)
	tasks := new(MockTaskLookup)
	service := NewEventService(repo, contacts, tasks)
	ctx := context.Background()

	taskID := uint(42)
	tasks.On("ExistsForTenant", ctx, "acme", uint(42)).Return(false, nil)

	starts := time.Now().Add(24 * time.Hour)
	_, err := service.Create(ctx, "acme", CreateEventRequest{
		Title:         "Design review",
		StartsAt:      starts,
		EndsAt:        starts.Add(time.Hour),
		EventType:     string(calendar.EventTaskDeadline),
		RelatedTaskID: &taskID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	repo.AssertNotCalled(t, "SaveWithParticipants")
}

func TestEventServiceOccurrencesRejectsNonRoot(t *testing.T) {
	repo := new(MockEventRepository)
	contacts := new(MockContactLookup)
	service := NewEventService(repo, contacts, new(MockTaskLookup))
	ctx := context.Background()

	starts := time.Now().Add(24 * time.Hour)
	parentID := uint(8)
	child, err := calendar.NewEvent("acme", "Weekly sync", starts, starts.Add(time.Hour))
	require.NoError(t, err)
	child.ID = 9
	child.ParentEventID = &parentID

	repo.On("FindByIDForTenant", ctx, "acme", uint(9)).Return(child, nil)

	_, err = service.Occurrences(ctx, "acme", 9)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	repo.AssertNotCalled(t, "FindOccurrences")
}

func TestEventServiceListFilterWiring(t *testing.T) {
	repo := new(MockEventRepository)
	contacts := new(MockContactLookup)
	service := NewEventService(repo, contacts, new(MockTaskLookup))
	ctx := context.Background()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	expected := func(f shared.Filter) bool {
		return f.Filters["include_cancelled"] == true &&
			f.Filters["organizer_id"] == uint(7) &&
			f.Filters["from"] == from &&
			f.Filters["to"] == to
	}
	repo.On("FindAllForTenant", ctx, "acme", mock.MatchedBy(expected)).Return([]calendar.Event{}, nil)
	repo.On("CountForTenant", ctx, "acme", mock.MatchedBy(expected)).Return(int64(0), nil)

	_, err := service.List(ctx, "acme", EventListFilter{
		IncludeCancelled: true,
		OrganizerID:      7,
		From:             &from,
		To:               &to,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestEventServiceCreateRejectsInvertedTimes(t *testing.T) {
	repo := new(MockEventRepository)
	contacts := new(MockContactLookup)
	service := NewEventService(repo, contacts, new(MockTaskLookup))

	starts := time.Now().Add(24 * time.Hour)
	_, err := service.Create(context.Background(), "acme", CreateEventRequest{
		Title:    "Kickoff",
		StartsAt: starts,
		EndsAt:   starts.Add(-time.Hour),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	repo.AssertNotCalled(t, "SaveWithParticipants")
}

func TestEventServiceUpdateMergedTimeValidation(t *testing.T) {
	repo := new(MockEventRepository)
	contacts := new(MockContactLookup)
	service := NewEventService(repo, contacts, new(MockTaskLookup))
	ctx := context.Background()

	starts := time.Now().Add(24 * time.Hour)
	e, err := calendar.NewEvent("acme", "Kickoff", starts, starts.Add(time.Hour))
	require.NoError(t, err)
	e.ID = 3

	repo.On("FindByIDForTenant", ctx, "acme", uint(3)).Return(e, nil)

	// moving the start past the current end must fail
	badStart := starts.Add(2 * time.Hour)
	_, err = service.Update(ctx, "acme", 3, UpdateEventRequest{StartsAt: &badStart})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	repo.AssertNotCalled(t, "Save")
}

func TestEventServiceAddParticipantDuplicate(t *testing.T) {
	repo := new(MockEventRepository)
	contacts := new(MockContactLookup)
	service := NewEventService(repo, contacts, new(MockTaskLookup))
	ctx := context.Background()

	repo.On("ExistsForTenant", ctx, "acme", uint(3)).Return(true, nil)
	contacts.On("ExistsForTenant", ctx, "acme", uint(7)).Return(true, nil)
	repo.On("ParticipantExists", ctx, "acme", uint(3), uint(7)).Return(true, nil)

	_, err := service.AddParticipant(ctx, "acme", 3, AddParticipantRequest{ContactID: 7})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	repo.AssertNotCalled(t, "SaveParticipant")
}

func TestEventServiceDeleteReminderWrongEvent(t *testing.T) {
	repo := new(MockEventRepository)
	contacts := new(MockContactLookup)
	service := NewEventService(repo, contacts, new(MockTaskLookup))
	ctx := context.Background()

	r, err := calendar.NewReminder("acme", 9, time.Now().Add(time.Hour), calendar.ReminderEmail)
	require.NoError(t, err)
	r.ID = 5

	repo.On("FindReminderByIDForTenant", ctx, "acme", uint(5)).Return(r, nil)

	err = service.DeleteReminder(ctx, "acme", 3, 5)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "DeleteReminder")
}

func TestEventServiceWeekUsesMondayWindow(t *testing.T) {
	repo := new(MockEventRepository)
	contacts := new(MockContactLookup)
	service := NewEventService(repo, contacts, new(MockTaskLookup))
	ctx := context.Background()

	now := time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	repo.On("FindInWindow", ctx, "acme", from, to).Return([]calendar.Event{}, nil)

	resp, err := service.Week(ctx, "acme")

	require.NoError(t, err)
	assert.Equal(t, from, resp.From)
	assert.Equal(t, to, resp.To)
	repo.AssertExpectations(t)
}

func TestEventServiceStats(t *testing.T) {
	repo := new(MockEventRepository)
	contacts := new(MockContactLookup)
	service := NewEventService(repo, contacts, new(MockTaskLookup))
	ctx := context.Background()

	now := time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)
	service.now = func() time.Time { return now }
	weekStart := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	repo.On("StatsForTenant", ctx, "acme", now, weekStart).Return(&calendar.Stats{
		Upcoming:  4,
		ThisWeek:  2,
		Cancelled: 1,
	}, nil)

	stats, err := service.Stats(ctx, "acme")

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Upcoming)
	assert.Equal(t, int64(2), stats.ThisWeek)
	assert.Equal(t, int64(1), stats.Cancelled)
}

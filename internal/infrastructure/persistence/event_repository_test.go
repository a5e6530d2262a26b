package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhub/backend/internal/domain/calendar"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

func seedEvent(t *testing.T, repo *GormEventRepository, tenantID, title string, startsAt time.Time, participants ...calendar.Participant) *calendar.Event {
	t.Helper()
	e, err := calendar.NewEvent(tenantID, title, startsAt, startsAt.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.SaveWithParticipants(context.Background(), e, participants))
	return e
}

func TestEventRepositoryParticipantUniqueness(t *testing.T) {
	db := newTestDB(t)
	contacts := NewGormContactRepository(db)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	contact := mustContact(t, contacts, "acme", "Ada", directory.ContactTypeInternal)
	e := seedEvent(t, repo, "acme", "Kickoff", time.Now().Add(24*time.Hour))

	p1, err := calendar.NewParticipant("acme", e.ID, contact.ID, calendar.RoleOrganizer, calendar.ResponseAccepted)
	require.NoError(t, err)
	require.NoError(t, repo.SaveParticipant(ctx, p1))

	// the composite unique index is authoritative
	p2, err := calendar.NewParticipant("acme", e.ID, contact.ID, calendar.RoleAttendee, calendar.ResponseInvited)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.SaveParticipant(ctx, p2), shared.ErrAlreadyExists)
}

func TestEventRepositoryDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	contacts := NewGormContactRepository(db)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	contact := mustContact(t, contacts, "acme", "Ada", directory.ContactTypeInternal)
	p, err := calendar.NewParticipant("acme", 0, contact.ID, calendar.RoleAttendee, calendar.ResponseAccepted)
	require.NoError(t, err)
	e := seedEvent(t, repo, "acme", "Kickoff", time.Now().Add(24*time.Hour), *p)

	rem, err := calendar.NewReminder("acme", e.ID, time.Now().Add(23*time.Hour), calendar.ReminderEmail)
	require.NoError(t, err)
	require.NoError(t, repo.SaveReminder(ctx, rem))

	require.NoError(t, repo.DeleteCascade(ctx, "acme", e.ID))

	_, err = repo.FindByIDForTenant(ctx, "acme", e.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	exists, err := repo.ParticipantExists(ctx, "acme", e.ID, contact.ID)
	require.NoError(t, err)
	assert.False(t, exists, "participants are removed with the event")

	reminders, err := repo.FindRemindersByEvent(ctx, "acme", e.ID)
	require.NoError(t, err)
	assert.Empty(t, reminders, "reminders are removed with the event")
}

func TestEventRepositoryDeleteCascadePromotesOccurrences(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	parent := seedEvent(t, repo, "acme", "Weekly sync", time.Now().Add(24*time.Hour))
	require.NoError(t, parent.SetRecurrence(calendar.RecurrenceWeekly, nil))
	require.NoError(t, repo.Save(ctx, parent))

	child := seedEvent(t, repo, "acme", "Weekly sync", time.Now().Add(8*24*time.Hour))
	child.ParentEventID = &parent.ID
	require.NoError(t, repo.Save(ctx, child))

	occurrences, err := repo.FindOccurrences(ctx, "acme", parent.ID)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, child.ID, occurrences[0].ID)

	require.NoError(t, repo.DeleteCascade(ctx, "acme", parent.ID))

	promoted, err := repo.FindByIDForTenant(ctx, "acme", child.ID)
	require.NoError(t, err)
	assert.Nil(t, promoted.ParentEventID, "occurrences become standalone events")
}

func TestEventRepositoryWindowAndStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	weekStart := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) // a Monday
	now := weekStart.Add(12 * time.Hour)

	inWeek := seedEvent(t, repo, "acme", "This week", weekStart.Add(48*time.Hour))
	// exactly at weekStart+7d falls outside the half-open window
	seedEvent(t, repo, "acme", "Next week", weekStart.AddDate(0, 0, 7))
	cancelled := seedEvent(t, repo, "acme", "Cancelled", weekStart.Add(24*time.Hour))
	cancelled.Cancel()
	require.NoError(t, repo.Save(ctx, cancelled))

	window, err := repo.FindInWindow(ctx, "acme", weekStart, weekStart.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, inWeek.ID, window[0].ID)

	stats, err := repo.StatsForTenant(ctx, "acme", now, weekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Upcoming)
	assert.Equal(t, int64(1), stats.ThisWeek)
	assert.Equal(t, int64(1), stats.Cancelled)

	// empty tenant is zero-valued, not an error
	empty, err := repo.StatsForTenant(ctx, "ghost", now, weekStart)
	require.NoError(t, err)
	assert.Zero(t, empty.Upcoming)
	assert.Zero(t, empty.ThisWeek)
	assert.Zero(t, empty.Cancelled)
}

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("valid", func(t *testing.T) {
		e, err := NewEvent("acme", "Sprint planning", start, end)
		require.NoError(t, err)
		assert.False(t, e.IsCancelled)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		_, err := NewEvent("acme", "Backwards", end, start)
		assert.Error(t, err)
	})

	t.Run("zero-length interval rejected", func(t *testing.T) {
		_, err := NewEvent("acme", "Instant", start, start)
		assert.Error(t, err)
	})

	t.Run("title required", func(t *testing.T) {
		_, err := NewEvent("acme", "  ", start, end)
		assert.Error(t, err)
	})
}

func TestEventReschedule(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	e, err := NewEvent("acme", "Standup", start, start.Add(30*time.Minute))
	require.NoError(t, err)

	require.NoError(t, e.Reschedule(start.Add(time.Hour), start.Add(2*time.Hour)))
	assert.Error(t, e.Reschedule(start.Add(time.Hour), start.Add(time.Hour)))
}

func TestNewParticipant(t *testing.T) {
	p, err := NewParticipant("acme", 1, 2, "", "")
	require.NoError(t, err)
	assert.Equal(t, RoleAttendee, p.Role)
	assert.Equal(t, ResponseInvited, p.Response)

	_, err = NewParticipant("acme", 1, 2, RoleAttendee, ResponseStatus("maybe-later"))
	assert.Error(t, err)

	_, err = NewParticipant("acme", 1, 2, ParticipantRole("spectator"), ResponseInvited)
	assert.Error(t, err)

	_, err = NewParticipant("acme", 1, 0, RoleAttendee, ResponseAccepted)
	assert.Error(t, err)
}

func TestEventRecurrence(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	e, err := NewEvent("acme", "Weekly sync", start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, RecurrenceNone, e.RecurrenceType)
	assert.False(t, e.IsOccurrence())

	until := start.AddDate(0, 3, 0)
	require.NoError(t, e.SetRecurrence(RecurrenceWeekly, &until))
	assert.Equal(t, RecurrenceWeekly, e.RecurrenceType)

	assert.Error(t, e.SetRecurrence(RecurrenceType("fortnightly"), nil))
	assert.Error(t, e.SetEventType(EventType("party")))
}

func TestNewReminder(t *testing.T) {
	at := time.Date(2026, 3, 10, 8, 45, 0, 0, time.UTC)

	r, err := NewReminder("acme", 1, at, "")
	require.NoError(t, err)
	assert.Equal(t, ReminderNotification, r.Method)

	_, err = NewReminder("acme", 1, time.Time{}, ReminderEmail)
	assert.Error(t, err)

	_, err = NewReminder("acme", 1, at, ReminderMethod("pigeon"))
	assert.Error(t, err)
}

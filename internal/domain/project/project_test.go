package project

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	p, err := NewProject("acme", "Website relaunch")
	require.NoError(t, err)
	assert.Equal(t, StatusPlanning, p.Status)

	_, err = NewProject("acme", "   ")
	assert.Error(t, err)
}

func TestProjectSetSchedule(t *testing.T) {
	p, err := NewProject("acme", "Rollout")
	require.NoError(t, err)

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)

	require.NoError(t, p.SetSchedule(&start, &end))
	assert.Error(t, p.SetSchedule(&end, &start))

	// open-ended schedules are fine
	assert.NoError(t, p.SetSchedule(&start, nil))
	assert.NoError(t, p.SetSchedule(nil, nil))
}

func TestNewMember(t *testing.T) {
	m, err := NewMember("acme", 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, RoleMember, m.Role)

	_, err = NewMember("acme", 1, 2, Role("boss"))
	assert.Error(t, err)

	_, err = NewMember("acme", 1, 0, RoleMember)
	assert.Error(t, err)
}

func TestOwnerDefaults(t *testing.T) {
	assert.Equal(t, string(RoleOwner), OwnerDefaults.RoleFor(5, 5))
	assert.Equal(t, string(RoleMember), OwnerDefaults.RoleFor(4, 5))
}

package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureMember(t *testing.T) {
	t.Run("appends missing creator", func(t *testing.T) {
		ids := EnsureMember([]uint{2, 3}, 1)
		assert.Equal(t, []uint{2, 3, 1}, ids)
	})

	t.Run("keeps creator position when already listed", func(t *testing.T) {
		ids := EnsureMember([]uint{1, 2}, 1)
		assert.Equal(t, []uint{1, 2}, ids)
	})

	t.Run("deduplicates input", func(t *testing.T) {
		ids := EnsureMember([]uint{2, 2, 3, 3}, 0)
		assert.Equal(t, []uint{2, 3}, ids)
	})

	t.Run("drops zero ids", func(t *testing.T) {
		ids := EnsureMember([]uint{0, 2}, 0)
		assert.Equal(t, []uint{2}, ids)
	})

	t.Run("no creator", func(t *testing.T) {
		ids := EnsureMember(nil, 0)
		assert.Empty(t, ids)
	})
}

func TestMembershipDefaults(t *testing.T) {
	d := MembershipDefaults{
		ElevatedRole:  "owner",
		DefaultRole:   "member",
		ElevatedState: "accepted",
		DefaultState:  "invited",
	}

	assert.Equal(t, "owner", d.RoleFor(1, 1))
	assert.Equal(t, "member", d.RoleFor(2, 1))
	assert.Equal(t, "member", d.RoleFor(1, 0))
	assert.Equal(t, "accepted", d.StateFor(1, 1))
	assert.Equal(t, "invited", d.StateFor(2, 1))
}

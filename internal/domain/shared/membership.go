package shared

// MembershipDefaults describes how an ownership-style link derives its
// role and status fields when members are attached at creation time.
// Projects and events both follow the same rule: the creating contact is
// always present and gets the elevated role, everyone else gets the
// default.
type MembershipDefaults struct {
	ElevatedRole  string
	DefaultRole   string
	ElevatedState string
	DefaultState  string
}

// EnsureMember returns ids de-duplicated in input order, with creatorID
// appended when it is non-zero and not already present.
func EnsureMember(ids []uint, creatorID uint) []uint {
	seen := make(map[uint]struct{}, len(ids)+1)
	out := make([]uint, 0, len(ids)+1)
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if creatorID != 0 {
		if _, ok := seen[creatorID]; !ok {
			out = append(out, creatorID)
		}
	}
	return out
}

// RoleFor resolves the role for a given member id under the defaults.
func (d MembershipDefaults) RoleFor(memberID, creatorID uint) string {
	if creatorID != 0 && memberID == creatorID {
		return d.ElevatedRole
	}
	return d.DefaultRole
}

// StateFor resolves the status for a given member id under the defaults.
func (d MembershipDefaults) StateFor(memberID, creatorID uint) string {
	if creatorID != 0 && memberID == creatorID {
		return d.ElevatedState
	}
	return d.DefaultState
}

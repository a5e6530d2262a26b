package project

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

// Role is a member's role within a project
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
	RoleViewer  Role = "viewer"
)

// OwnerDefaults captures the rule that a project's owner contact is
// always a member with the owner role.
var OwnerDefaults = shared.MembershipDefaults{
	ElevatedRole: string(RoleOwner),
	DefaultRole:  string(RoleMember),
}

// Member links a contact to a project. The (project, contact) pair is
// unique, enforced by a composite index.
type Member struct {
	shared.TenantEntity
	ProjectID  uint               `gorm:"not null;uniqueIndex:idx_member_project_contact,priority:1" json:"project_id"`
	ContactID  uint               `gorm:"not null;uniqueIndex:idx_member_project_contact,priority:2" json:"contact_id"`
	Contact    *directory.Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Role       Role               `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt   *time.Time         `json:"joined_at,omitempty"`
	HourlyRate *decimal.Decimal   `gorm:"type:decimal(10,2)" json:"hourly_rate,omitempty"`
}

// TableName returns the table name for GORM
func (Member) TableName() string {
	return "project_members"
}

// NewMember creates a member with the role validated
func NewMember(tenantID string, projectID, contactID uint, role Role) (*Member, error) {
	if role == "" {
		role = RoleMember
	}
	if err := ValidateRole(role); err != nil {
		return nil, err
	}
	if contactID == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Contact is required")
	}
	now := time.Now()
	return &Member{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		ProjectID:    projectID,
		ContactID:    contactID,
		Role:         role,
		JoinedAt:     &now,
	}, nil
}

// ChangeRole updates the member's role
func (m *Member) ChangeRole(role Role) error {
	if err := ValidateRole(role); err != nil {
		return err
	}
	m.Role = role
	m.UpdatedAt = time.Now()
	return nil
}

// ValidateRole reports whether the role is a known value
func ValidateRole(r Role) error {
	switch r {
	case RoleOwner, RoleManager, RoleMember, RoleViewer:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid project role: "+string(r))
	}
}

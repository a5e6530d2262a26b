package project

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/workhub/backend/internal/domain/shared"
)

// LinkKind names one of the three link tables
type LinkKind string

const (
	LinkTask     LinkKind = "task"
	LinkDocument LinkKind = "document"
	LinkEvent    LinkKind = "event"
)

// LinkCounts tallies attached entities per kind
type LinkCounts struct {
	Tasks     int64 `json:"tasks"`
	Documents int64 `json:"documents"`
	Events    int64 `json:"events"`
}

// Stats aggregates project state for a tenant
type Stats struct {
	ByStatus    map[Status]int64 `json:"by_status"`
	TotalBudget decimal.Decimal  `json:"total_budget"`
}

// Repository defines persistence operations for projects, members,
// links and the activity trail.
type Repository interface {
	// SaveWithMembers writes the project and its member rows in one
	// transaction.
	SaveWithMembers(ctx context.Context, p *Project, members []Member) error
	Save(ctx context.Context, p *Project) error
	FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*Project, error)
	FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]Project, error)
	CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error)
	ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error)
	// DeleteCascade removes the project with its members, links and
	// activities in one transaction. Linked entities survive.
	DeleteCascade(ctx context.Context, tenantID string, id uint) error

	SaveMember(ctx context.Context, m *Member) error
	FindMember(ctx context.Context, tenantID string, projectID, contactID uint) (*Member, error)
	MemberExists(ctx context.Context, tenantID string, projectID, contactID uint) (bool, error)
	DeleteMember(ctx context.Context, tenantID string, projectID, contactID uint) error
	CountMembersWithRole(ctx context.Context, tenantID string, projectID uint, role Role) (int64, error)

	SaveLink(ctx context.Context, kind LinkKind, tenantID string, projectID, targetID uint) error
	LinkExists(ctx context.Context, kind LinkKind, tenantID string, projectID, targetID uint) (bool, error)
	DeleteLink(ctx context.Context, kind LinkKind, tenantID string, projectID, targetID uint) error
	LinkedIDs(ctx context.Context, kind LinkKind, tenantID string, projectID uint) ([]uint, error)
	CountLinks(ctx context.Context, tenantID string, projectID uint) (*LinkCounts, error)

	AppendActivity(ctx context.Context, a *Activity) error
	FindActivities(ctx context.Context, tenantID string, projectID uint, filter shared.Filter) ([]Activity, error)

	StatsForTenant(ctx context.Context, tenantID string) (*Stats, error)
}

// Package project models projects, their membership, and the link
// tables that attach tasks, documents and events to a project.
package project

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

// Status represents the lifecycle state of a project
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Priority represents the urgency of a project
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Project groups work across all other contexts. Archival is a flag
// orthogonal to the lifecycle status: a cancelled project may or may
// not be archived.
type Project struct {
	shared.TenantEntity
	Name        string             `gorm:"type:varchar(300);not null" json:"name"`
	Description string             `gorm:"type:text" json:"description"`
	Status      Status             `gorm:"type:varchar(20);not null;default:'planning';index" json:"status"`
	Priority    Priority           `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	StartsOn    *time.Time         `json:"starts_on,omitempty"`
	EndsOn      *time.Time         `json:"ends_on,omitempty"`
	Budget      *decimal.Decimal   `gorm:"type:decimal(18,4)" json:"budget,omitempty"`
	OwnerID     *uint              `gorm:"index" json:"owner_id,omitempty"`
	Owner       *directory.Contact `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	ClientID    *uint              `gorm:"index" json:"client_id,omitempty"`
	Client      *directory.Contact `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	IsPublic    bool               `gorm:"not null;default:false" json:"is_public"`
	IsArchived  bool               `gorm:"not null;default:false;index" json:"is_archived"`
	Members     []Member           `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a project with required fields validated
func NewProject(tenantID, name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Project name is required")
	}
	if len(name) > 300 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Project name cannot exceed 300 characters")
	}
	return &Project{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		Name:         name,
		Status:       StatusPlanning,
		Priority:     PriorityMedium,
	}, nil
}

// SetStatus changes the lifecycle state
func (p *Project) SetStatus(status Status) error {
	if err := ValidateStatus(status); err != nil {
		return err
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

// SetPriority changes the urgency
func (p *Project) SetPriority(priority Priority) error {
	if err := ValidatePriority(priority); err != nil {
		return err
	}
	p.Priority = priority
	p.UpdatedAt = time.Now()
	return nil
}

// SetSchedule updates the start/end dates; when both are set the end
// must not precede the start.
func (p *Project) SetSchedule(startsOn, endsOn *time.Time) error {
	if startsOn != nil && endsOn != nil && endsOn.Before(*startsOn) {
		return shared.NewDomainError("VALIDATION_ERROR", "Project cannot end before it starts")
	}
	p.StartsOn = startsOn
	p.EndsOn = endsOn
	p.UpdatedAt = time.Now()
	return nil
}

// ValidateStatus reports whether the status is a known value
func ValidateStatus(s Status) error {
	switch s {
	case StatusPlanning, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid project status: "+string(s))
	}
}

// ValidatePriority reports whether the priority is a known value
func ValidatePriority(p Priority) error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid project priority: "+string(p))
	}
}

// Package task models work items that can be assigned to contacts and
// linked into projects.
package task

import (
	"strings"
	"time"

	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

// Status represents the workflow state of a task
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// Priority represents the urgency of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// TerminalStatuses are states that never count as overdue
var TerminalStatuses = []Status{StatusDone, StatusCancelled}

// Task represents a unit of work
type Task struct {
	shared.TenantEntity
	Title       string             `gorm:"type:varchar(300);not null" json:"title"`
	Description string             `gorm:"type:text" json:"description"`
	Status      Status             `gorm:"type:varchar(20);not null;default:'todo';index" json:"status"`
	Priority    Priority           `gorm:"type:varchar(20);not null;default:'medium';index" json:"priority"`
	Deadline    *time.Time         `json:"deadline,omitempty"`
	AssigneeID  *uint              `gorm:"index" json:"assignee_id,omitempty"`
	Assignee    *directory.Contact `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	CreatorID   *uint              `json:"creator_id,omitempty"`
	Creator     *directory.Contact `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	IsArchived  bool               `gorm:"not null;default:false;index" json:"is_archived"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a task with required fields validated
func NewTask(tenantID, title string) (*Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	return &Task{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		Title:        strings.TrimSpace(title),
		Status:       StatusTodo,
		Priority:     PriorityMedium,
	}, nil
}

// Retitle changes the task title
func (t *Task) Retitle(title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	t.Title = strings.TrimSpace(title)
	t.UpdatedAt = time.Now()
	return nil
}

// SetStatus transitions the task to a new workflow state.
// Transitions are unrestricted; only the value set is validated.
func (t *Task) SetStatus(status Status) error {
	if err := ValidateStatus(status); err != nil {
		return err
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	return nil
}

// SetPriority changes the task priority
func (t *Task) SetPriority(priority Priority) error {
	if err := ValidatePriority(priority); err != nil {
		return err
	}
	t.Priority = priority
	t.UpdatedAt = time.Now()
	return nil
}

// IsOverdue reports whether the task's deadline has passed while it is
// still in a non-terminal state.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Deadline == nil || t.IsArchived {
		return false
	}
	if t.Status == StatusDone || t.Status == StatusCancelled {
		return false
	}
	return t.Deadline.Before(now)
}

// ValidateStatus reports whether the status is a known value
func ValidateStatus(s Status) error {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone, StatusCancelled:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid task status: "+string(s))
	}
}

// ValidatePriority reports whether the priority is a known value
func ValidatePriority(p Priority) error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid task priority: "+string(p))
	}
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Task title is required")
	}
	if len(title) > 300 {
		return shared.NewDomainError("VALIDATION_ERROR", "Task title cannot exceed 300 characters")
	}
	return nil
}

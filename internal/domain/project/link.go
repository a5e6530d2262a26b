package project

import (
	"github.com/workhub/backend/internal/domain/shared"
)

// TaskLink attaches an existing task to a project
type TaskLink struct {
	shared.TenantEntity
	ProjectID uint `gorm:"not null;uniqueIndex:idx_link_project_task,priority:1" json:"project_id"`
	TaskID    uint `gorm:"not null;uniqueIndex:idx_link_project_task,priority:2" json:"task_id"`
}

// TableName returns the table name for GORM
func (TaskLink) TableName() string {
	return "project_tasks"
}

// DocumentLink attaches an existing document to a project
type DocumentLink struct {
	shared.TenantEntity
	ProjectID  uint `gorm:"not null;uniqueIndex:idx_link_project_document,priority:1" json:"project_id"`
	DocumentID uint `gorm:"not null;uniqueIndex:idx_link_project_document,priority:2" json:"document_id"`
}

// TableName returns the table name for GORM
func (DocumentLink) TableName() string {
	return "project_documents"
}

// EventLink attaches an existing event to a project
type EventLink struct {
	shared.TenantEntity
	ProjectID uint `gorm:"not null;uniqueIndex:idx_link_project_event,priority:1" json:"project_id"`
	EventID   uint `gorm:"not null;uniqueIndex:idx_link_project_event,priority:2" json:"event_id"`
}

// TableName returns the table name for GORM
func (EventLink) TableName() string {
	return "project_events"
}

// Activity is an append-only audit row recording linker and membership
// operations on a project.
type Activity struct {
	shared.TenantEntity
	ProjectID uint   `gorm:"not null;index" json:"project_id"`
	ActorID   *uint  `json:"actor_id,omitempty"`
	Action    string `gorm:"type:varchar(100);not null" json:"action"`
	Detail    string `gorm:"type:text" json:"detail"`
}

// TableName returns the table name for GORM
func (Activity) TableName() string {
	return "project_activities"
}

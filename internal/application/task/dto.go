package task

import (
	"time"

	appdirectory "github.com/workhub/backend/internal/application/directory"
	"github.com/workhub/backend/internal/domain/task"
)

// CreateTaskRequest represents a request to create a new task
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=300"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress review done cancelled"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Deadline    *time.Time `json:"deadline"`
	AssigneeID  *uint      `json:"assignee_id"`
	CreatorID   *uint      `json:"creator_id"`
}

// UpdateTaskRequest represents a request to update a task
type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=300"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,oneof=todo in_progress review done cancelled"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Deadline    *time.Time `json:"deadline"`
	AssigneeID  *uint      `json:"assignee_id"`
	ClearFields []string   `json:"clear_fields" binding:"omitempty,dive,oneof=deadline assignee_id"`
}

// ChangeStatusRequest represents a status transition request
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=todo in_progress review done cancelled"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID          uint                          `json:"id"`
	TenantID    string                        `json:"tenant_id"`
	Title       string                        `json:"title"`
	Description string                        `json:"description"`
	Status      string                        `json:"status"`
	Priority    string                        `json:"priority"`
	Deadline    *time.Time                    `json:"deadline,omitempty"`
	AssigneeID  *uint                         `json:"assignee_id,omitempty"`
	Assignee    *appdirectory.ContactResponse `json:"assignee,omitempty"`
	CreatorID   *uint                         `json:"creator_id,omitempty"`
	IsArchived  bool                          `json:"is_archived"`
	IsOverdue   bool                          `json:"is_overdue"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}

// TaskListFilter represents filter options for task lists
type TaskListFilter struct {
	Search          string `form:"search"`
	Status          string `form:"status" binding:"omitempty,oneof=todo in_progress review done cancelled"`
	Priority        string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssigneeID      uint   `form:"assignee_id"`
	Overdue         bool   `form:"overdue"`
	IncludeArchived bool   `form:"include_archived"`
	Limit           int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset          int    `form:"offset" binding:"omitempty,min=0"`
}

// TaskStatsResponse aggregates task state for a tenant
type TaskStatsResponse struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByPriority map[string]int64 `json:"by_priority"`
	Overdue    int64            `json:"overdue"`
}

// ToTaskResponse converts a domain Task to TaskResponse
func ToTaskResponse(t *task.Task, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		TenantID:    t.TenantID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Deadline:    t.Deadline,
		AssigneeID:  t.AssigneeID,
		CreatorID:   t.CreatorID,
		IsArchived:  t.IsArchived,
		IsOverdue:   t.IsOverdue(now),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Assignee != nil {
		assignee := appdirectory.ToContactResponse(t.Assignee)
		resp.Assignee = &assignee
	}
	return resp
}

// ToTaskResponses converts a slice of domain Tasks
func ToTaskResponses(tasks []task.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = ToTaskResponse(&tasks[i], now)
	}
	return out
}

// Package task implements application services for work items.
package task

import (
	"context"
	"time"

	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
	"github.com/workhub/backend/internal/domain/task"
	"github.com/workhub/backend/internal/infrastructure/telemetry"
)

// TaskService handles task-related business operations
type TaskService struct {
	taskRepo    task.Repository
	contactRepo directory.ContactRepository
	metrics     *telemetry.WorkspaceMetrics
	now         func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo task.Repository, contactRepo directory.ContactRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		contactRepo: contactRepo,
		now:         time.Now,
	}
}

// SetMetrics sets the workspace metrics collector
func (s *TaskService) SetMetrics(m *telemetry.WorkspaceMetrics) {
	s.metrics = m
}

func (s *TaskService) recordWrite(ctx context.Context, tenantID, operation string) {
	if s.metrics != nil {
		s.metrics.RecordEntityWrite(ctx, tenantID, "tasks", operation)
	}
}

// ensureContact verifies a referenced contact belongs to the tenant
func (s *TaskService) ensureContact(ctx context.Context, tenantID string, contactID uint, field string) error {
	exists, err := s.contactRepo.ExistsForTenant(ctx, tenantID, contactID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("NOT_FOUND", "Unknown "+field+" contact")
	}
	return nil
}

// Create creates a new task
func (s *TaskService) Create(ctx context.Context, tenantID string, req CreateTaskRequest) (*TaskResponse, error) {
	t, err := task.NewTask(tenantID, req.Title)
	if err != nil {
		return nil, err
	}

	t.Description = req.Description
	if req.Status != "" {
		if err := t.SetStatus(task.Status(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Priority != "" {
		if err := t.SetPriority(task.Priority(req.Priority)); err != nil {
			return nil, err
		}
	}
	t.Deadline = req.Deadline

	if req.AssigneeID != nil {
		if err := s.ensureContact(ctx, tenantID, *req.AssigneeID, "assignee"); err != nil {
			return nil, err
		}
		t.AssigneeID = req.AssigneeID
	}
	if req.CreatorID != nil {
		if err := s.ensureContact(ctx, tenantID, *req.CreatorID, "creator"); err != nil {
			return nil, err
		}
		t.CreatorID = req.CreatorID
	}

	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "create")
	response := ToTaskResponse(t, s.now())
	return &response, nil
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, tenantID string, taskID uint) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByIDForTenant(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}

	response := ToTaskResponse(t, s.now())
	return &response, nil
}

// List retrieves tasks with filtering and pagination
func (s *TaskService) List(ctx context.Context, tenantID string, filter TaskListFilter) (*shared.Paginated[TaskResponse], error) {
	domainFilter := shared.Filter{
		Limit:   filter.Limit,
		Offset:  filter.Offset,
		Search:  filter.Search,
		Filters: make(map[string]interface{}),
	}
	domainFilter.Normalize()

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Priority != "" {
		domainFilter.Filters["priority"] = filter.Priority
	}
	if filter.AssigneeID != 0 {
		domainFilter.Filters["assignee_id"] = filter.AssigneeID
	}
	if filter.Overdue {
		domainFilter.Filters["overdue"] = true
	}
	if !filter.IncludeArchived {
		domainFilter.Filters["is_archived"] = false
	}

	tasks, err := s.taskRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.taskRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToTaskResponses(tasks, s.now()), total, domainFilter.Limit, domainFilter.Offset)
	return &page, nil
}

// Update updates a task
func (s *TaskService) Update(ctx context.Context, tenantID string, taskID uint, req UpdateTaskRequest) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByIDForTenant(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := t.Retitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		if err := t.SetStatus(task.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if err := t.SetPriority(task.Priority(*req.Priority)); err != nil {
			return nil, err
		}
	}
	if req.Deadline != nil {
		t.Deadline = req.Deadline
	}
	if req.AssigneeID != nil {
		if err := s.ensureContact(ctx, tenantID, *req.AssigneeID, "assignee"); err != nil {
			return nil, err
		}
		t.AssigneeID = req.AssigneeID
		t.Assignee = nil
	}
	for _, field := range req.ClearFields {
		switch field {
		case "deadline":
			t.Deadline = nil
		case "assignee_id":
			t.AssigneeID = nil
			t.Assignee = nil
		}
	}

	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToTaskResponse(t, s.now())
	return &response, nil
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, tenantID string, taskID uint) error {
	if err := s.taskRepo.Delete(ctx, tenantID, taskID); err != nil {
		return err
	}
	s.recordWrite(ctx, tenantID, "delete")
	return nil
}

// ChangeStatus transitions a task to a new status. Any transition is
// allowed; done and cancelled simply stop counting toward overdue.
func (s *TaskService) ChangeStatus(ctx context.Context, tenantID string, taskID uint, req ChangeStatusRequest) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByIDForTenant(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}

	if err := t.SetStatus(task.Status(req.Status)); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToTaskResponse(t, s.now())
	return &response, nil
}

// Archive marks a task as archived
func (s *TaskService) Archive(ctx context.Context, tenantID string, taskID uint) (*TaskResponse, error) {
	return s.setArchived(ctx, tenantID, taskID, true)
}

// Unarchive clears a task's archived flag
func (s *TaskService) Unarchive(ctx context.Context, tenantID string, taskID uint) (*TaskResponse, error) {
	return s.setArchived(ctx, tenantID, taskID, false)
}

func (s *TaskService) setArchived(ctx context.Context, tenantID string, taskID uint, archived bool) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByIDForTenant(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}

	t.IsArchived = archived
	t.UpdatedAt = s.now()

	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToTaskResponse(t, s.now())
	return &response, nil
}

// Stats returns task counts by status and priority plus the overdue
// tally. An unknown tenant yields zeroes, not an error.
func (s *TaskService) Stats(ctx context.Context, tenantID string) (*TaskStatsResponse, error) {
	byStatus, err := s.taskRepo.CountByStatus(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.taskRepo.CountByPriority(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	overdue, err := s.taskRepo.CountOverdue(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	stats := &TaskStatsResponse{
		ByStatus:   make(map[string]int64, len(byStatus)),
		ByPriority: make(map[string]int64, len(byPriority)),
		Overdue:    overdue,
	}
	for status, count := range byStatus {
		stats.ByStatus[string(status)] = count
		stats.Total += count
	}
	for priority, count := range byPriority {
		stats.ByPriority[string(priority)] = count
	}
	return stats, nil
}

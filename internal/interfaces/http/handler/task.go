package handler

import (
	"github.com/gin-gonic/gin"
	taskapp "github.com/workhub/backend/internal/application/task"
)

// TaskHandler handles task-related API endpoints
type TaskHandler struct {
	BaseHandler
	taskService *taskapp.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *taskapp.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// RegisterRoutes registers task routes on a tenant-scoped group
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	tasks.POST("", h.Create)
	tasks.GET("", h.List)
	tasks.GET("/stats", h.Stats)
	tasks.GET("/:id", h.GetByID)
	tasks.PUT("/:id", h.Update)
	tasks.DELETE("/:id", h.Delete)
	tasks.POST("/:id/status", h.ChangeStatus)
	tasks.POST("/:id/archive", h.Archive)
	tasks.POST("/:id/unarchive", h.Unarchive)
}

// ChangeStatus transitions a task to a new status
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	var req taskapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.ChangeStatus(c.Request.Context(), getTenantID(c), taskID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// Create creates a new task
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskapp.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, task)
}

// List retrieves tasks with filtering and pagination
func (h *TaskHandler) List(c *gin.Context) {
	var filter taskapp.TaskListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.taskService.List(c.Request.Context(), getTenantID(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Limit, page.Offset)
}

// Stats returns task counts for the tenant
func (h *TaskHandler) Stats(c *gin.Context) {
	stats, err := h.taskService.Stats(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetByID retrieves a task by ID
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), getTenantID(c), taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// Update updates a task
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	var req taskapp.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), getTenantID(c), taskID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// Delete removes a task
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), getTenantID(c), taskID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Archive marks a task as archived
func (h *TaskHandler) Archive(c *gin.Context) {
	h.setArchived(c, true)
}

// Unarchive clears a task's archived flag
func (h *TaskHandler) Unarchive(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *TaskHandler) setArchived(c *gin.Context, archived bool) {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	var task *taskapp.TaskResponse
	if archived {
		task, err = h.taskService.Archive(c.Request.Context(), getTenantID(c), taskID)
	} else {
		task, err = h.taskService.Unarchive(c.Request.Context(), getTenantID(c), taskID)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

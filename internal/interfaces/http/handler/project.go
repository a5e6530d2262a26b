package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	projectapp "github.com/workhub/backend/internal/application/project"
)

// ProjectHandler handles project API endpoints
type ProjectHandler struct {
	BaseHandler
	projectService *projectapp.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *projectapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// RegisterRoutes registers project routes on a tenant-scoped group
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.POST("", h.Create)
	projects.GET("", h.List)
	projects.GET("/stats", h.Stats)
	projects.GET("/:id", h.GetByID)
	projects.PUT("/:id", h.Update)
	projects.POST("/:id/archive", h.Archive)
	projects.POST("/:id/unarchive", h.Unarchive)
	projects.DELETE("/:id", h.Delete)

	projects.GET("/:id/members", h.ListMembers)
	projects.POST("/:id/members", h.AddMember)
	projects.PUT("/:id/members/:contact_id", h.ChangeRole)
	projects.DELETE("/:id/members/:contact_id", h.RemoveMember)

	projects.GET("/:id/tasks", h.LinkedTasks)
	projects.POST("/:id/tasks", h.LinkTask)
	projects.DELETE("/:id/tasks/:target_id", h.UnlinkTask)
	projects.GET("/:id/documents", h.LinkedDocuments)
	projects.POST("/:id/documents", h.LinkDocument)
	projects.DELETE("/:id/documents/:target_id", h.UnlinkDocument)
	projects.GET("/:id/events", h.LinkedEvents)
	projects.POST("/:id/events", h.LinkEvent)
	projects.DELETE("/:id/events/:target_id", h.UnlinkEvent)

	projects.GET("/:id/activity", h.Activity)
}

// Create creates a new project
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectapp.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, project)
}

// List retrieves projects with filtering and pagination
func (h *ProjectHandler) List(c *gin.Context) {
	var filter projectapp.ProjectListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.projectService.List(c.Request.Context(), getTenantID(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Limit, page.Offset)
}

// Stats returns project tallies for the tenant
func (h *ProjectHandler) Stats(c *gin.Context) {
	stats, err := h.projectService.Stats(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetByID retrieves a project with its members and link counts
func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), getTenantID(c), projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, project)
}

// Update edits a project
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var req projectapp.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), getTenantID(c), projectID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, project)
}

// Archive flags a project as archived
func (h *ProjectHandler) Archive(c *gin.Context) {
	h.setArchived(c, true)
}

// Unarchive clears a project's archived flag
func (h *ProjectHandler) Unarchive(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *ProjectHandler) setArchived(c *gin.Context, archived bool) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var project *projectapp.ProjectResponse
	if archived {
		project, err = h.projectService.Archive(c.Request.Context(), getTenantID(c), projectID)
	} else {
		project, err = h.projectService.Unarchive(c.Request.Context(), getTenantID(c), projectID)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, project)
}

// Delete removes a project; linked entities survive
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), getTenantID(c), projectID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListMembers lists a project's members
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	members, err := h.projectService.ListMembers(c.Request.Context(), getTenantID(c), projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, members)
}

// AddMember attaches a contact to a project
func (h *ProjectHandler) AddMember(c *gin.Context) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var req projectapp.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.projectService.AddMember(c.Request.Context(), getTenantID(c), projectID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, member)
}

// ChangeRole changes a member's role
func (h *ProjectHandler) ChangeRole(c *gin.Context) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}
	contactID, err := parseIDParam(c, "contact_id")
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	var req projectapp.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.projectService.ChangeRole(c.Request.Context(), getTenantID(c), projectID, contactID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, member)
}

// RemoveMember detaches a contact from a project
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}
	contactID, err := parseIDParam(c, "contact_id")
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.projectService.RemoveMember(c.Request.Context(), getTenantID(c), projectID, contactID, actorIDQuery(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// LinkTask attaches a task to a project
func (h *ProjectHandler) LinkTask(c *gin.Context) {
	h.link(c, h.projectService.LinkTask)
}

// UnlinkTask detaches a task from a project
func (h *ProjectHandler) UnlinkTask(c *gin.Context) {
	h.unlink(c, h.projectService.UnlinkTask)
}

// LinkDocument attaches a document to a project
func (h *ProjectHandler) LinkDocument(c *gin.Context) {
	h.link(c, h.projectService.LinkDocument)
}

// UnlinkDocument detaches a document from a project
func (h *ProjectHandler) UnlinkDocument(c *gin.Context) {
	h.unlink(c, h.projectService.UnlinkDocument)
}

// LinkEvent attaches an event to a project
func (h *ProjectHandler) LinkEvent(c *gin.Context) {
	h.link(c, h.projectService.LinkEvent)
}

// UnlinkEvent detaches an event from a project
func (h *ProjectHandler) UnlinkEvent(c *gin.Context) {
	h.unlink(c, h.projectService.UnlinkEvent)
}

// LinkedTasks lists the tasks attached to a project
func (h *ProjectHandler) LinkedTasks(c *gin.Context) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	tasks, err := h.projectService.LinkedTasks(c.Request.Context(), getTenantID(c), projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tasks)
}

// LinkedDocuments lists the documents attached to a project
func (h *ProjectHandler) LinkedDocuments(c *gin.Context) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	documents, err := h.projectService.LinkedDocuments(c.Request.Context(), getTenantID(c), projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, documents)
}

// LinkedEvents lists the events attached to a project
func (h *ProjectHandler) LinkedEvents(c *gin.Context) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	events, err := h.projectService.LinkedEvents(c.Request.Context(), getTenantID(c), projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, events)
}

// Activity returns the newest-first activity trail of a project
func (h *ProjectHandler) Activity(c *gin.Context) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	activity, err := h.projectService.Activity(c.Request.Context(), getTenantID(c), projectID, limit, offset)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, activity)
}

func (h *ProjectHandler) link(c *gin.Context, call func(ctx context.Context, tenantID string, projectID uint, req projectapp.LinkRequest) error) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var req projectapp.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := call(c.Request.Context(), getTenantID(c), projectID, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, nil)
}

func (h *ProjectHandler) unlink(c *gin.Context, call func(ctx context.Context, tenantID string, projectID, targetID uint, actorID *uint) error) {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}
	targetID, err := parseIDParam(c, "target_id")
	if err != nil {
		h.BadRequest(c, "Invalid target ID")
		return
	}

	if err := call(c.Request.Context(), getTenantID(c), projectID, targetID, actorIDQuery(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// actorIDQuery reads the optional actor_id query parameter
func actorIDQuery(c *gin.Context) *uint {
	raw := c.Query("actor_id")
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	actorID := uint(value)
	return &actorID
}

package handler

import (
	"github.com/gin-gonic/gin"
	documentapp "github.com/workhub/backend/internal/application/document"
)

// FolderHandler handles folder API endpoints
type FolderHandler struct {
	BaseHandler
	folderService *documentapp.FolderService
}

// NewFolderHandler creates a new FolderHandler
func NewFolderHandler(folderService *documentapp.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

// RegisterRoutes registers folder routes on a tenant-scoped group
func (h *FolderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	folders := rg.Group("/folders")
	folders.POST("", h.Create)
	folders.GET("", h.List)
	folders.GET("/:id", h.GetByID)
	folders.GET("/:id/contents", h.Contents)
	folders.PUT("/:id", h.Update)
	folders.DELETE("/:id", h.Delete)
}

// folderListQuery filters the folder listing
type folderListQuery struct {
	ParentID *uint `form:"parent_id"`
	RootOnly bool  `form:"root_only"`
}

// Create creates a new folder
func (h *FolderHandler) Create(c *gin.Context) {
	var req documentapp.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	folder, err := h.folderService.Create(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, folder)
}

// List retrieves folders, optionally scoped to one parent or the root level
func (h *FolderHandler) List(c *gin.Context) {
	var query folderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	folders, err := h.folderService.List(c.Request.Context(), getTenantID(c), query.ParentID, query.RootOnly)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, folders)
}

// GetByID retrieves a folder by ID
func (h *FolderHandler) GetByID(c *gin.Context) {
	folderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid folder ID")
		return
	}

	folder, err := h.folderService.GetByID(c.Request.Context(), getTenantID(c), folderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, folder)
}

// Contents lists a folder's immediate subfolders and documents.
// The literal id "root" selects the tenant's root level.
func (h *FolderHandler) Contents(c *gin.Context) {
	var folderID uint
	if c.Param("id") != "root" {
		id, err := parseIDParam(c, "id")
		if err != nil {
			h.BadRequest(c, "Invalid folder ID")
			return
		}
		folderID = id
	}

	contents, err := h.folderService.Contents(c.Request.Context(), getTenantID(c), folderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contents)
}

// Update renames or moves a folder
func (h *FolderHandler) Update(c *gin.Context) {
	folderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid folder ID")
		return
	}

	var req documentapp.UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	folder, err := h.folderService.Update(c.Request.Context(), getTenantID(c), folderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, folder)
}

// Delete removes an empty folder
func (h *FolderHandler) Delete(c *gin.Context) {
	folderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid folder ID")
		return
	}

	if err := h.folderService.Delete(c.Request.Context(), getTenantID(c), folderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

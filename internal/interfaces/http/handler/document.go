package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	documentapp "github.com/workhub/backend/internal/application/document"
)

// DocumentHandler handles document and share API endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *documentapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *documentapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterRoutes registers document routes on a tenant-scoped group
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	documents.POST("", h.Upload)
	documents.POST("/upload-url", h.GenerateUploadURL)
	documents.POST("/confirm", h.ConfirmUpload)
	documents.GET("", h.List)
	documents.GET("/stats", h.Stats)
	documents.GET("/:id", h.GetByID)
	documents.GET("/:id/download", h.Download)
	documents.PUT("/:id", h.Update)
	documents.DELETE("/:id", h.Delete)
	documents.POST("/:id/archive", h.Archive)
	documents.POST("/:id/unarchive", h.Unarchive)
	documents.POST("/:id/shares", h.CreateShare)
	documents.GET("/:id/shares", h.ListShares)
	documents.DELETE("/:id/shares/:share_id", h.DeleteShare)
}

// Upload accepts a multipart upload and stores the blob plus metadata
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Could not read uploaded file")
		return
	}

	req := documentapp.UploadDocumentRequest{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		Description: c.PostForm("description"),
	}
	if folderID, ok := parseFormUint(c, "folder_id"); ok {
		req.FolderID = &folderID
	}
	if uploadedByID, ok := parseFormUint(c, "uploaded_by_id"); ok {
		req.UploadedByID = &uploadedByID
	}
	req.IsPublic = c.PostForm("is_public") == "true"

	document, err := h.documentService.Upload(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, document)
}

// GenerateUploadURL hands out a presigned PUT target
func (h *DocumentHandler) GenerateUploadURL(c *gin.Context) {
	var req documentapp.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	slot, err := h.documentService.GenerateUploadURL(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, slot)
}

// ConfirmUpload registers a blob uploaded via a presigned URL
func (h *DocumentHandler) ConfirmUpload(c *gin.Context) {
	var req documentapp.ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	document, err := h.documentService.ConfirmUpload(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, document)
}

// List retrieves document metadata with filtering and pagination
func (h *DocumentHandler) List(c *gin.Context) {
	var filter documentapp.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.documentService.List(c.Request.Context(), getTenantID(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Limit, page.Offset)
}

// Stats returns storage usage for the tenant
func (h *DocumentHandler) Stats(c *gin.Context) {
	stats, err := h.documentService.Stats(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetByID retrieves document metadata by ID
func (h *DocumentHandler) GetByID(c *gin.Context) {
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	document, err := h.documentService.GetByID(c.Request.Context(), getTenantID(c), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, document)
}

// Download returns a time-limited download URL and counts the download
func (h *DocumentHandler) Download(c *gin.Context) {
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	download, err := h.documentService.Download(c.Request.Context(), getTenantID(c), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, download)
}

// Update edits document metadata or moves it between folders
func (h *DocumentHandler) Update(c *gin.Context) {
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req documentapp.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	document, err := h.documentService.Update(c.Request.Context(), getTenantID(c), documentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, document)
}

// Delete removes a document, its blob and its shares
func (h *DocumentHandler) Delete(c *gin.Context) {
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), getTenantID(c), documentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Archive marks a document as archived
func (h *DocumentHandler) Archive(c *gin.Context) {
	h.setArchived(c, true)
}

// Unarchive clears a document's archived flag
func (h *DocumentHandler) Unarchive(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *DocumentHandler) setArchived(c *gin.Context, archived bool) {
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var document *documentapp.DocumentResponse
	if archived {
		document, err = h.documentService.Archive(c.Request.Context(), getTenantID(c), documentID)
	} else {
		document, err = h.documentService.Unarchive(c.Request.Context(), getTenantID(c), documentID)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, document)
}

// CreateShare grants a contact access to a document
func (h *DocumentHandler) CreateShare(c *gin.Context) {
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req documentapp.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	share, err := h.documentService.CreateShare(c.Request.Context(), getTenantID(c), documentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, share)
}

// ListShares lists a document's shares
func (h *DocumentHandler) ListShares(c *gin.Context) {
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	shares, err := h.documentService.ListShares(c.Request.Context(), getTenantID(c), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, shares)
}

// DeleteShare revokes a share
func (h *DocumentHandler) DeleteShare(c *gin.Context) {
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}
	shareID, err := parseIDParam(c, "share_id")
	if err != nil {
		h.BadRequest(c, "Invalid share ID")
		return
	}

	if err := h.documentService.DeleteShare(c.Request.Context(), getTenantID(c), documentID, shareID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// parseFormUint reads an optional numeric form field
func parseFormUint(c *gin.Context, name string) (uint, bool) {
	raw := c.PostForm(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}

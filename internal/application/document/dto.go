package document

import (
	"time"

	appdirectory "github.com/workhub/backend/internal/application/directory"
	"github.com/workhub/backend/internal/domain/document"
)

// CreateFolderRequest represents a request to create a folder
type CreateFolderRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	ParentID  *uint  `json:"parent_id"`
	CreatorID *uint  `json:"creator_id"`
}

// UpdateFolderRequest represents a request to rename or move a folder
type UpdateFolderRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=200"`
	ParentID   *uint   `json:"parent_id"`
	MoveToRoot bool    `json:"move_to_root"`
}

// FolderResponse represents a folder in API responses
type FolderResponse struct {
	ID        uint      `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	ParentID  *uint     `json:"parent_id,omitempty"`
	CreatorID *uint     `json:"creator_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FolderContentsResponse lists a folder's immediate children
type FolderContentsResponse struct {
	Folder     *FolderResponse    `json:"folder,omitempty"`
	Subfolders []FolderResponse   `json:"subfolders"`
	Documents  []DocumentResponse `json:"documents"`
}

// UploadDocumentRequest carries the metadata accompanying a direct upload
type UploadDocumentRequest struct {
	Filename     string
	ContentType  string
	Data         []byte
	FolderID     *uint
	UploadedByID *uint
	Description  string
	IsPublic     bool
}

// UploadURLRequest asks for a presigned upload slot
type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required,min=1,max=300"`
	ContentType string `json:"content_type" binding:"max=150"`
}

// UploadURLResponse returns the presigned PUT target
type UploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ConfirmUploadRequest registers a blob uploaded via a presigned URL
type ConfirmUploadRequest struct {
	StorageKey   string `json:"storage_key" binding:"required,max=500"`
	Filename     string `json:"filename" binding:"required,min=1,max=300"`
	ContentType  string `json:"content_type" binding:"max=150"`
	SizeBytes    int64  `json:"size_bytes" binding:"min=0"`
	FolderID     *uint  `json:"folder_id"`
	UploadedByID *uint  `json:"uploaded_by_id"`
	Description  string `json:"description"`
	IsPublic     bool   `json:"is_public"`
}

// UpdateDocumentRequest represents a metadata update for a document
type UpdateDocumentRequest struct {
	Filename    *string `json:"filename" binding:"omitempty,min=1,max=300"`
	Description *string `json:"description"`
	FolderID    *uint   `json:"folder_id"`
	MoveToRoot  bool    `json:"move_to_root"`
	IsPublic    *bool   `json:"is_public"`
}

// DocumentResponse represents document metadata in API responses
type DocumentResponse struct {
	ID            uint                          `json:"id"`
	TenantID      string                        `json:"tenant_id"`
	Filename      string                        `json:"filename"`
	FolderID      *uint                         `json:"folder_id,omitempty"`
	ContentType   string                        `json:"content_type"`
	SizeBytes     int64                         `json:"size_bytes"`
	UploadedByID  *uint                         `json:"uploaded_by_id,omitempty"`
	UploadedBy    *appdirectory.ContactResponse `json:"uploaded_by,omitempty"`
	DownloadCount int64                         `json:"download_count"`
	Description   string                        `json:"description"`
	Version       int                           `json:"version"`
	IsPublic      bool                          `json:"is_public"`
	IsArchived    bool                          `json:"is_archived"`
	CreatedAt     time.Time                     `json:"created_at"`
	UpdatedAt     time.Time                     `json:"updated_at"`
}

// DownloadResponse returns a time-limited download URL
type DownloadResponse struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// DocumentListFilter represents filter options for document lists
type DocumentListFilter struct {
	Search          string `form:"search"`
	FolderID        uint   `form:"folder_id"`
	ContentType     string `form:"content_type"`
	UploadedBy      uint   `form:"uploaded_by"`
	IncludeArchived bool   `form:"include_archived"`
	Limit           int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset          int    `form:"offset" binding:"omitempty,min=0"`
}

// CreateShareRequest grants a contact access to a document
type CreateShareRequest struct {
	SharedWithID uint   `json:"shared_with_id" binding:"required"`
	SharedByID   *uint  `json:"shared_by_id"`
	Permission   string `json:"permission" binding:"omitempty,oneof=read write admin"`
}

// ShareResponse represents a document share in API responses
type ShareResponse struct {
	ID           uint                          `json:"id"`
	DocumentID   uint                          `json:"document_id"`
	SharedWithID uint                          `json:"shared_with_id"`
	SharedWith   *appdirectory.ContactResponse `json:"shared_with,omitempty"`
	SharedByID   *uint                         `json:"shared_by_id,omitempty"`
	Permission   string                        `json:"permission"`
	CreatedAt    time.Time                     `json:"created_at"`
}

// StorageStatsResponse aggregates document usage for a tenant
type StorageStatsResponse struct {
	DocumentCount int64            `json:"document_count"`
	TotalBytes    int64            `json:"total_bytes"`
	ByContentType map[string]int64 `json:"by_content_type"`
}

// ToFolderResponse converts a domain Folder to FolderResponse
func ToFolderResponse(f *document.Folder) FolderResponse {
	return FolderResponse{
		ID:        f.ID,
		TenantID:  f.TenantID,
		Name:      f.Name,
		ParentID:  f.ParentID,
		CreatorID: f.CreatorID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ToFolderResponses converts a slice of domain Folders
func ToFolderResponses(folders []document.Folder) []FolderResponse {
	out := make([]FolderResponse, len(folders))
	for i := range folders {
		out[i] = ToFolderResponse(&folders[i])
	}
	return out
}

// ToDocumentResponse converts a domain Document to DocumentResponse
func ToDocumentResponse(d *document.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:            d.ID,
		TenantID:      d.TenantID,
		Filename:      d.Filename,
		FolderID:      d.FolderID,
		ContentType:   d.ContentType,
		SizeBytes:     d.SizeBytes,
		UploadedByID:  d.UploadedByID,
		DownloadCount: d.DownloadCount,
		Description:   d.Description,
		Version:       d.Version,
		IsPublic:      d.IsPublic,
		IsArchived:    d.IsArchived,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.UploadedBy != nil {
		uploader := appdirectory.ToContactResponse(d.UploadedBy)
		resp.UploadedBy = &uploader
	}
	return resp
}

// ToDocumentResponses converts a slice of domain Documents
func ToDocumentResponses(documents []document.Document) []DocumentResponse {
	out := make([]DocumentResponse, len(documents))
	for i := range documents {
		out[i] = ToDocumentResponse(&documents[i])
	}
	return out
}

// ToShareResponse converts a domain Share to ShareResponse
func ToShareResponse(s *document.Share) ShareResponse {
	resp := ShareResponse{
		ID:           s.ID,
		DocumentID:   s.DocumentID,
		SharedWithID: s.SharedWithID,
		SharedByID:   s.SharedByID,
		Permission:   string(s.Permission),
		CreatedAt:    s.CreatedAt,
	}
	if s.SharedWith != nil {
		contact := appdirectory.ToContactResponse(s.SharedWith)
		resp.SharedWith = &contact
	}
	return resp
}

// ToShareResponses converts a slice of domain Shares
func ToShareResponses(shares []document.Share) []ShareResponse {
	out := make([]ShareResponse, len(shares))
	for i := range shares {
		out[i] = ToShareResponse(&shares[i])
	}
	return out
}

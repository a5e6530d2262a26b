package document

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/document"
	"github.com/workhub/backend/internal/domain/shared"
	"github.com/workhub/backend/internal/infrastructure/telemetry"
)

// DocumentService handles document metadata, blob transfer and shares
type DocumentService struct {
	docRepo     document.Repository
	folderRepo  document.FolderRepository
	contactRepo directory.ContactRepository
	storage     BlobStorage
	metrics     *telemetry.WorkspaceMetrics
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(docRepo document.Repository, folderRepo document.FolderRepository, contactRepo directory.ContactRepository, storage BlobStorage) *DocumentService {
	return &DocumentService{
		docRepo:     docRepo,
		folderRepo:  folderRepo,
		contactRepo: contactRepo,
		storage:     storage,
	}
}

// SetMetrics sets the workspace metrics collector
func (s *DocumentService) SetMetrics(m *telemetry.WorkspaceMetrics) {
	s.metrics = m
}

// storageKeyFor builds a collision-free blob key scoped to the tenant
func storageKeyFor(tenantID, filename string) string {
	base := path.Base(strings.TrimSpace(filename))
	return tenantID + "/" + uuid.NewString() + "-" + base
}

func storageFailure(err error) error {
	return shared.NewDomainError("STORAGE_FAILURE", "Blob storage operation failed: "+err.Error())
}

func (s *DocumentService) validateRefs(ctx context.Context, tenantID string, folderID, uploadedByID *uint) error {
	if folderID != nil {
		exists, err := s.folderRepo.ExistsForTenant(ctx, tenantID, *folderID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NewDomainError("NOT_FOUND", "Unknown folder")
		}
	}
	if uploadedByID != nil {
		exists, err := s.contactRepo.ExistsForTenant(ctx, tenantID, *uploadedByID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NewDomainError("NOT_FOUND", "Unknown uploader contact")
		}
	}
	return nil
}

// Upload stores the blob and registers the document in one operation.
// The blob is written first; if the metadata insert then fails the blob
// is deleted best-effort.
func (s *DocumentService) Upload(ctx context.Context, tenantID string, req UploadDocumentRequest) (*DocumentResponse, error) {
	if len(req.Data) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Upload payload is empty")
	}
	if err := s.validateRefs(ctx, tenantID, req.FolderID, req.UploadedByID); err != nil {
		return nil, err
	}

	d, err := document.NewDocument(tenantID, req.Filename, storageKeyFor(tenantID, req.Filename))
	if err != nil {
		return nil, err
	}
	d.ContentType = req.ContentType
	d.SizeBytes = int64(len(req.Data))
	d.FolderID = req.FolderID
	d.UploadedByID = req.UploadedByID
	d.Description = req.Description
	d.IsPublic = req.IsPublic

	if err := s.storage.Upload(ctx, d.StoragePath, req.Data, req.ContentType); err != nil {
		return nil, storageFailure(err)
	}

	if err := s.docRepo.Save(ctx, d); err != nil {
		_ = s.storage.DeleteObject(ctx, d.StoragePath)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordDocumentUpload(ctx, tenantID, req.ContentType, d.SizeBytes)
	}
	response := ToDocumentResponse(d)
	return &response, nil
}

// GenerateUploadURL returns a presigned PUT slot for a direct-to-store
// upload. The caller registers the blob afterwards via ConfirmUpload.
func (s *DocumentService) GenerateUploadURL(ctx context.Context, tenantID string, req UploadURLRequest) (*UploadURLResponse, error) {
	key := storageKeyFor(tenantID, req.Filename)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, 0)
	if err != nil {
		return nil, storageFailure(err)
	}
	return &UploadURLResponse{
		UploadURL:  url,
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload registers a blob previously uploaded through a
// presigned URL. The key must belong to the tenant and the object must
// actually exist.
func (s *DocumentService) ConfirmUpload(ctx context.Context, tenantID string, req ConfirmUploadRequest) (*DocumentResponse, error) {
	if !strings.HasPrefix(req.StorageKey, tenantID+"/") {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Storage key does not belong to this workspace")
	}
	if err := s.validateRefs(ctx, tenantID, req.FolderID, req.UploadedByID); err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, storageFailure(err)
	}
	if !exists {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "No uploaded object found for this storage key")
	}

	d, err := document.NewDocument(tenantID, req.Filename, req.StorageKey)
	if err != nil {
		return nil, err
	}
	d.ContentType = req.ContentType
	d.SizeBytes = req.SizeBytes
	d.FolderID = req.FolderID
	d.UploadedByID = req.UploadedByID
	d.Description = req.Description
	d.IsPublic = req.IsPublic

	if err := s.docRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordDocumentUpload(ctx, tenantID, req.ContentType, req.SizeBytes)
	}
	response := ToDocumentResponse(d)
	return &response, nil
}

// GetByID retrieves document metadata by ID
func (s *DocumentService) GetByID(ctx context.Context, tenantID string, documentID uint) (*DocumentResponse, error) {
	d, err := s.docRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}

	response := ToDocumentResponse(d)
	return &response, nil
}

// List retrieves documents with filtering and pagination
func (s *DocumentService) List(ctx context.Context, tenantID string, filter DocumentListFilter) (*shared.Paginated[DocumentResponse], error) {
	domainFilter := shared.Filter{
		Limit:   filter.Limit,
		Offset:  filter.Offset,
		Search:  filter.Search,
		Filters: make(map[string]interface{}),
	}
	domainFilter.Normalize()

	if filter.FolderID != 0 {
		domainFilter.Filters["folder_id"] = filter.FolderID
	}
	if filter.ContentType != "" {
		domainFilter.Filters["content_type"] = filter.ContentType
	}
	if filter.UploadedBy != 0 {
		domainFilter.Filters["uploaded_by"] = filter.UploadedBy
	}
	if !filter.IncludeArchived {
		domainFilter.Filters["is_archived"] = false
	}

	docs, err := s.docRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.docRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToDocumentResponses(docs), total, domainFilter.Limit, domainFilter.Offset)
	return &page, nil
}

// Update changes document metadata; the blob key never changes
func (s *DocumentService) Update(ctx context.Context, tenantID string, documentID uint, req UpdateDocumentRequest) (*DocumentResponse, error) {
	d, err := s.docRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}

	if req.Filename != nil {
		if err := d.Rename(*req.Filename); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.IsPublic != nil {
		d.IsPublic = *req.IsPublic
	}
	if req.MoveToRoot {
		d.FolderID = nil
	} else if req.FolderID != nil {
		exists, err := s.folderRepo.ExistsForTenant(ctx, tenantID, *req.FolderID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("NOT_FOUND", "Unknown folder")
		}
		d.FolderID = req.FolderID
	}

	if err := s.docRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(d)
	return &response, nil
}

// Archive marks a document as archived
func (s *DocumentService) Archive(ctx context.Context, tenantID string, documentID uint) (*DocumentResponse, error) {
	return s.setArchived(ctx, tenantID, documentID, true)
}

// Unarchive clears a document's archived flag
func (s *DocumentService) Unarchive(ctx context.Context, tenantID string, documentID uint) (*DocumentResponse, error) {
	return s.setArchived(ctx, tenantID, documentID, false)
}

func (s *DocumentService) setArchived(ctx context.Context, tenantID string, documentID uint, archived bool) (*DocumentResponse, error) {
	d, err := s.docRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}

	d.IsArchived = archived

	if err := s.docRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(d)
	return &response, nil
}

// Download bumps the download counter and returns a time-limited URL
func (s *DocumentService) Download(ctx context.Context, tenantID string, documentID uint) (*DownloadResponse, error) {
	d, err := s.docRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, d.StoragePath, 0)
	if err != nil {
		return nil, storageFailure(err)
	}

	if err := s.docRepo.IncrementDownloadCount(ctx, tenantID, documentID); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordDocumentDownload(ctx, tenantID)
	}
	return &DownloadResponse{
		Filename:    d.Filename,
		ContentType: d.ContentType,
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	}, nil
}

// Delete removes the blob, then the metadata row. A failing blob
// delete aborts the operation. Shares of the document are not removed;
// they stay behind as orphaned references and no longer surface in
// share listings.
func (s *DocumentService) Delete(ctx context.Context, tenantID string, documentID uint) error {
	d, err := s.docRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, d.StoragePath); err != nil {
		return storageFailure(err)
	}

	return s.docRepo.Delete(ctx, tenantID, documentID)
}

// CreateShare grants a contact access to a document
func (s *DocumentService) CreateShare(ctx context.Context, tenantID string, documentID uint, req CreateShareRequest) (*ShareResponse, error) {
	exists, err := s.docRepo.ExistsForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	contactExists, err := s.contactRepo.ExistsForTenant(ctx, tenantID, req.SharedWithID)
	if err != nil {
		return nil, err
	}
	if !contactExists {
		return nil, shared.NewDomainError("NOT_FOUND", "Unknown contact")
	}
	if req.SharedByID != nil {
		sharerExists, err := s.contactRepo.ExistsForTenant(ctx, tenantID, *req.SharedByID)
		if err != nil {
			return nil, err
		}
		if !sharerExists {
			return nil, shared.NewDomainError("NOT_FOUND", "Unknown sharing contact")
		}
	}

	// Fast path; the composite unique index is authoritative under races
	alreadyShared, err := s.docRepo.ShareExists(ctx, tenantID, documentID, req.SharedWithID)
	if err != nil {
		return nil, err
	}
	if alreadyShared {
		return nil, shared.ErrAlreadyExists
	}

	share, err := document.NewShare(tenantID, documentID, req.SharedWithID, req.SharedByID, document.SharePermission(req.Permission))
	if err != nil {
		return nil, err
	}

	if err := s.docRepo.SaveShare(ctx, share); err != nil {
		return nil, err
	}

	response := ToShareResponse(share)
	return &response, nil
}

// ListShares lists shares of a document. A deleted or unknown document
// id yields an empty list rather than NotFound.
func (s *DocumentService) ListShares(ctx context.Context, tenantID string, documentID uint) ([]ShareResponse, error) {
	shares, err := s.docRepo.FindSharesByDocument(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}
	return ToShareResponses(shares), nil
}

// DeleteShare revokes a share on a document
func (s *DocumentService) DeleteShare(ctx context.Context, tenantID string, documentID, shareID uint) error {
	share, err := s.docRepo.FindShareByIDForTenant(ctx, tenantID, shareID)
	if err != nil {
		return err
	}
	if share.DocumentID != documentID {
		return shared.ErrNotFound
	}
	return s.docRepo.DeleteShare(ctx, tenantID, shareID)
}

// Stats aggregates document usage for a tenant. An unknown tenant
// yields zeroes, not an error.
func (s *DocumentService) Stats(ctx context.Context, tenantID string) (*StorageStatsResponse, error) {
	totals, err := s.docRepo.Totals(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	stats := &StorageStatsResponse{
		DocumentCount: totals.DocumentCount,
		TotalBytes:    totals.TotalBytes,
		ByContentType: make(map[string]int64, len(totals.ByContentType)),
	}
	for _, tc := range totals.ByContentType {
		stats.ByContentType[tc.ContentType] = tc.Count
	}
	return stats, nil
}

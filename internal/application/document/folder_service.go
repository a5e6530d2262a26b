// Package document implements application services for folders,
// document metadata and shares. Blobs live behind the BlobStorage port.
package document

import (
	"context"

	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/document"
	"github.com/workhub/backend/internal/domain/shared"
)

// FolderService handles folder tree operations
type FolderService struct {
	folderRepo  document.FolderRepository
	docRepo     document.Repository
	contactRepo directory.ContactRepository
}

// NewFolderService creates a new FolderService
func NewFolderService(folderRepo document.FolderRepository, docRepo document.Repository, contactRepo directory.ContactRepository) *FolderService {
	return &FolderService{
		folderRepo:  folderRepo,
		docRepo:     docRepo,
		contactRepo: contactRepo,
	}
}

// Create creates a folder, optionally under a parent
func (s *FolderService) Create(ctx context.Context, tenantID string, req CreateFolderRequest) (*FolderResponse, error) {
	if req.ParentID != nil {
		exists, err := s.folderRepo.ExistsForTenant(ctx, tenantID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("NOT_FOUND", "Unknown parent folder")
		}
	}
	if req.CreatorID != nil {
		exists, err := s.contactRepo.ExistsForTenant(ctx, tenantID, *req.CreatorID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("NOT_FOUND", "Unknown creator contact")
		}
	}

	f, err := document.NewFolder(tenantID, req.Name, req.ParentID)
	if err != nil {
		return nil, err
	}
	f.CreatorID = req.CreatorID

	if err := s.folderRepo.Save(ctx, f); err != nil {
		return nil, err
	}

	response := ToFolderResponse(f)
	return &response, nil
}

// GetByID retrieves a folder by ID
func (s *FolderService) GetByID(ctx context.Context, tenantID string, folderID uint) (*FolderResponse, error) {
	f, err := s.folderRepo.FindByIDForTenant(ctx, tenantID, folderID)
	if err != nil {
		return nil, err
	}

	response := ToFolderResponse(f)
	return &response, nil
}

// List retrieves folders, either all of them, the roots, or the
// children of one parent.
func (s *FolderService) List(ctx context.Context, tenantID string, parentID *uint, rootOnly bool) ([]FolderResponse, error) {
	folders, err := s.folderRepo.FindAllForTenant(ctx, tenantID, parentID, rootOnly)
	if err != nil {
		return nil, err
	}
	return ToFolderResponses(folders), nil
}

// Contents lists a folder's immediate subfolders and documents.
// A zero folderID means the root level.
func (s *FolderService) Contents(ctx context.Context, tenantID string, folderID uint) (*FolderContentsResponse, error) {
	resp := &FolderContentsResponse{}

	var parentID *uint
	rootOnly := folderID == 0
	if !rootOnly {
		f, err := s.folderRepo.FindByIDForTenant(ctx, tenantID, folderID)
		if err != nil {
			return nil, err
		}
		folder := ToFolderResponse(f)
		resp.Folder = &folder
		parentID = &folderID
	}

	subfolders, err := s.folderRepo.FindAllForTenant(ctx, tenantID, parentID, rootOnly)
	if err != nil {
		return nil, err
	}
	resp.Subfolders = ToFolderResponses(subfolders)

	docFilter := shared.DefaultFilter()
	docFilter.Limit = 200
	if rootOnly {
		docFilter.Filters["folder_id"] = nil
	} else {
		docFilter.Filters["folder_id"] = folderID
	}
	documents, err := s.docRepo.FindAllForTenant(ctx, tenantID, docFilter)
	if err != nil {
		return nil, err
	}
	resp.Documents = ToDocumentResponses(documents)

	return resp, nil
}

// Update renames or moves a folder. Moves are validated against the
// tree to reject self-parenting and cycles.
func (s *FolderService) Update(ctx context.Context, tenantID string, folderID uint, req UpdateFolderRequest) (*FolderResponse, error) {
	f, err := s.folderRepo.FindByIDForTenant(ctx, tenantID, folderID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := f.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.MoveToRoot {
		f.ParentID = nil
	} else if req.ParentID != nil {
		exists, err := s.folderRepo.ExistsForTenant(ctx, tenantID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("NOT_FOUND", "Unknown parent folder")
		}

		resolve := func(ctx context.Context, id uint) (*uint, error) {
			return s.folderRepo.ParentOf(ctx, tenantID, id)
		}
		if err := shared.ValidateReparent(ctx, resolve, folderID, *req.ParentID); err != nil {
			return nil, err
		}
		f.ParentID = req.ParentID
	}

	if err := s.folderRepo.Save(ctx, f); err != nil {
		return nil, err
	}

	response := ToFolderResponse(f)
	return &response, nil
}

// Delete removes an empty folder. Folders holding subfolders or
// documents are rejected with a conflict.
func (s *FolderService) Delete(ctx context.Context, tenantID string, folderID uint) error {
	children, err := s.folderRepo.CountChildren(ctx, tenantID, folderID)
	if err != nil {
		return err
	}
	if children > 0 {
		return shared.NewDomainError("CONFLICT", "Folder still contains subfolders")
	}

	docs, err := s.docRepo.CountInFolder(ctx, tenantID, folderID)
	if err != nil {
		return err
	}
	if docs > 0 {
		return shared.NewDomainError("CONFLICT", "Folder still contains documents")
	}

	return s.folderRepo.Delete(ctx, tenantID, folderID)
}

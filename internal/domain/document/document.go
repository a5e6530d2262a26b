package document

import (
	"strings"
	"time"

	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

// Document represents stored file metadata. The blob itself lives in
// object storage under StoragePath.
type Document struct {
	shared.TenantEntity
	Filename      string             `gorm:"type:varchar(300);not null" json:"filename"`
	FolderID      *uint              `gorm:"index" json:"folder_id,omitempty"`
	StoragePath   string             `gorm:"type:varchar(500);not null" json:"-"`
	ContentType   string             `gorm:"type:varchar(150)" json:"content_type"`
	SizeBytes     int64              `gorm:"not null;default:0" json:"size_bytes"`
	UploadedByID  *uint              `gorm:"index" json:"uploaded_by_id,omitempty"`
	UploadedBy    *directory.Contact `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
	Version       int                `gorm:"not null;default:1" json:"version"`
	IsPublic      bool               `gorm:"not null;default:false" json:"is_public"`
	DownloadCount int64              `gorm:"not null;default:0" json:"download_count"`
	Description   string             `gorm:"type:text" json:"description"`
	IsArchived    bool               `gorm:"not null;default:false;index" json:"is_archived"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// NewDocument creates document metadata for an already-stored blob
func NewDocument(tenantID, filename, storagePath string) (*Document, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}
	if storagePath == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Storage path is required")
	}
	return &Document{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		Filename:     strings.TrimSpace(filename),
		StoragePath:  storagePath,
		Version:      1,
	}, nil
}

// Rename changes the stored filename (the blob key is unaffected)
func (d *Document) Rename(filename string) error {
	if err := validateFilename(filename); err != nil {
		return err
	}
	d.Filename = strings.TrimSpace(filename)
	d.UpdatedAt = time.Now()
	return nil
}

func validateFilename(filename string) error {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Filename is required")
	}
	if len(filename) > 300 {
		return shared.NewDomainError("VALIDATION_ERROR", "Filename cannot exceed 300 characters")
	}
	return nil
}

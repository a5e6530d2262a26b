// Package document models the file store: folders forming a tree,
// document metadata pointing at blobs, and per-contact shares.
package document

import (
	"strings"
	"time"

	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

// Folder represents a node in the folder tree
type Folder struct {
	shared.TenantEntity
	Name      string             `gorm:"type:varchar(200);not null" json:"name"`
	ParentID  *uint              `gorm:"index" json:"parent_id,omitempty"`
	CreatorID *uint              `gorm:"index" json:"creator_id,omitempty"`
	Creator   *directory.Contact `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

// TableName returns the table name for GORM
func (Folder) TableName() string {
	return "folders"
}

// NewFolder creates a folder with its name validated
func NewFolder(tenantID, name string, parentID *uint) (*Folder, error) {
	if err := validateFolderName(name); err != nil {
		return nil, err
	}
	return &Folder{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		Name:         strings.TrimSpace(name),
		ParentID:     parentID,
	}, nil
}

// Rename changes the folder name
func (f *Folder) Rename(name string) error {
	if err := validateFolderName(name); err != nil {
		return err
	}
	f.Name = strings.TrimSpace(name)
	f.UpdatedAt = time.Now()
	return nil
}

func validateFolderName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Folder name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Folder name cannot exceed 200 characters")
	}
	return nil
}

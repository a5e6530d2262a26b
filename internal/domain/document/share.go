package document

import (
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

// SharePermission is the access level granted by a share
type SharePermission string

const (
	PermissionRead  SharePermission = "read"
	PermissionWrite SharePermission = "write"
	PermissionAdmin SharePermission = "admin"
)

// Share grants a contact access to a document. The (document, contact)
// pair is unique per tenant, enforced by a composite index. Shares are
// not removed when their document is deleted; the rows stay behind as
// orphaned references.
type Share struct {
	shared.TenantEntity
	DocumentID   uint               `gorm:"not null;uniqueIndex:idx_share_doc_contact,priority:1" json:"document_id"`
	SharedWithID uint               `gorm:"not null;uniqueIndex:idx_share_doc_contact,priority:2" json:"shared_with_id"`
	SharedWith   *directory.Contact `gorm:"foreignKey:SharedWithID" json:"shared_with,omitempty"`
	SharedByID   *uint              `gorm:"index" json:"shared_by_id,omitempty"`
	SharedBy     *directory.Contact `gorm:"foreignKey:SharedByID" json:"shared_by,omitempty"`
	Permission   SharePermission    `gorm:"type:varchar(10);not null;default:'read'" json:"permission"`
}

// TableName returns the table name for GORM
func (Share) TableName() string {
	return "document_shares"
}

// NewShare creates a share with the permission validated
func NewShare(tenantID string, documentID, sharedWithID uint, sharedByID *uint, permission SharePermission) (*Share, error) {
	if permission == "" {
		permission = PermissionRead
	}
	if err := ValidatePermission(permission); err != nil {
		return nil, err
	}
	if documentID == 0 || sharedWithID == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document and contact are required")
	}
	return &Share{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		DocumentID:   documentID,
		SharedWithID: sharedWithID,
		SharedByID:   sharedByID,
		Permission:   permission,
	}, nil
}

// ValidatePermission reports whether the permission is a known value
func ValidatePermission(p SharePermission) error {
	switch p {
	case PermissionRead, PermissionWrite, PermissionAdmin:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid share permission: "+string(p))
	}
}

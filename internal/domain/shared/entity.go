package shared

import (
	"time"
)

// TenantEntity is the embedded base for all tenant-scoped rows.
// Primary keys are numeric and auto-incremented; the tenant discriminator
// is an opaque slug taken from the request path.
type TenantEntity struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID  string    `gorm:"size:50;not null;index" json:"tenant_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetID returns the entity ID
func (e *TenantEntity) GetID() uint {
	return e.ID
}

// GetTenantID returns the tenant discriminator
func (e *TenantEntity) GetTenantID() string {
	return e.TenantID
}

// SetTenantID assigns the tenant discriminator
func (e *TenantEntity) SetTenantID(tenantID string) {
	e.TenantID = tenantID
}

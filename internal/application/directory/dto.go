package directory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workhub/backend/internal/domain/directory"
)

// CreateContactRequest represents a request to create a new contact
type CreateContactRequest struct {
	Name       string           `json:"name" binding:"required,min=1,max=200"`
	Email      string           `json:"email" binding:"omitempty,email,max=200"`
	Phone      string           `json:"phone" binding:"max=50"`
	Company    string           `json:"company" binding:"max=200"`
	Role       string           `json:"role" binding:"max=100"`
	Type       string           `json:"contact_type" binding:"omitempty,oneof=customer partner supplier internal"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
	Notes      string           `json:"notes"`
}

// UpdateContactRequest represents a request to update a contact
type UpdateContactRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email      *string          `json:"email" binding:"omitempty,max=200"`
	Phone      *string          `json:"phone" binding:"omitempty,max=50"`
	Company    *string          `json:"company" binding:"omitempty,max=200"`
	Role       *string          `json:"role" binding:"omitempty,max=100"`
	Type       *string          `json:"contact_type" binding:"omitempty,oneof=customer partner supplier internal"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
	Notes      *string          `json:"notes"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID         uint             `json:"id"`
	TenantID   string           `json:"tenant_id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Company    string           `json:"company"`
	Role       string           `json:"role"`
	Type       string           `json:"contact_type"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	Notes      string           `json:"notes"`
	IsArchived bool             `json:"is_archived"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ContactListFilter represents filter options for contact lists
type ContactListFilter struct {
	Search          string `form:"search"`
	Type            string `form:"contact_type" binding:"omitempty,oneof=customer partner supplier internal"`
	Company         string `form:"company"`
	IncludeArchived bool   `form:"include_archived"`
	Limit           int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset          int    `form:"offset" binding:"omitempty,min=0"`
}

// ContactStatsResponse aggregates the contact book for a tenant
type ContactStatsResponse struct {
	Total    int64            `json:"total"`
	ByType   map[string]int64 `json:"by_type"`
	Archived int64            `json:"archived"`
}

// ToContactResponse converts a domain Contact to ContactResponse
func ToContactResponse(c *directory.Contact) ContactResponse {
	return ContactResponse{
		ID:         c.ID,
		TenantID:   c.TenantID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Company:    c.Company,
		Role:       c.Role,
		Type:       string(c.Type),
		HourlyRate: c.HourlyRate,
		Notes:      c.Notes,
		IsArchived: c.IsArchived,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToContactResponses converts a slice of domain Contacts
func ToContactResponses(contacts []directory.Contact) []ContactResponse {
	out := make([]ContactResponse, len(contacts))
	for i := range contacts {
		out[i] = ToContactResponse(&contacts[i])
	}
	return out
}

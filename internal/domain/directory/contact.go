// Package directory holds the contact book: the people and companies
// every other context (tasks, messages, events, projects) points at.
package directory

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workhub/backend/internal/domain/shared"
)

// ContactType classifies the relationship a contact has with the tenant
type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypePartner  ContactType = "partner"
	ContactTypeSupplier ContactType = "supplier"
	ContactTypeInternal ContactType = "internal" // Tenant's own staff
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Contact represents a person or organisation in the tenant's directory
type Contact struct {
	shared.TenantEntity
	Name       string           `gorm:"type:varchar(200);not null" json:"name"`
	Email      string           `gorm:"type:varchar(200);index" json:"email"`
	Phone      string           `gorm:"type:varchar(50)" json:"phone"`
	Company    string           `gorm:"type:varchar(200);index" json:"company"`
	Role       string           `gorm:"type:varchar(100)" json:"role"`
	Type       ContactType      `gorm:"type:varchar(20);not null;default:'customer'" json:"contact_type"`
	HourlyRate *decimal.Decimal `gorm:"type:decimal(18,4)" json:"hourly_rate,omitempty"`
	Notes      string           `gorm:"type:text" json:"notes"`
	IsArchived bool             `gorm:"not null;default:false;index" json:"is_archived"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a contact with required fields validated
func NewContact(tenantID, name string, contactType ContactType) (*Contact, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if contactType == "" {
		contactType = ContactTypeCustomer
	}
	if err := ValidateContactType(contactType); err != nil {
		return nil, err
	}

	return &Contact{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		Name:         strings.TrimSpace(name),
		Type:         contactType,
	}, nil
}

// Rename changes the contact's display name
func (c *Contact) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now()
	return nil
}

// SetEmail validates and sets the email address. Empty clears it.
func (c *Contact) SetEmail(email string) error {
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid email address")
	}
	c.Email = email
	c.UpdatedAt = time.Now()
	return nil
}

// SetType changes the contact classification
func (c *Contact) SetType(contactType ContactType) error {
	if err := ValidateContactType(contactType); err != nil {
		return err
	}
	c.Type = contactType
	c.UpdatedAt = time.Now()
	return nil
}

// Archive marks the contact as archived
func (c *Contact) Archive() {
	c.IsArchived = true
	c.UpdatedAt = time.Now()
}

// Unarchive clears the archived flag
func (c *Contact) Unarchive() {
	c.IsArchived = false
	c.UpdatedAt = time.Now()
}

// ValidateContactType reports whether the given type is one of the known values
func ValidateContactType(t ContactType) error {
	switch t {
	case ContactTypeCustomer, ContactTypePartner, ContactTypeSupplier, ContactTypeInternal:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid contact type: "+string(t))
	}
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Contact name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Contact name cannot exceed 200 characters")
	}
	return nil
}

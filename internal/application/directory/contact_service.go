// Package directory implements application services for the contact book.
package directory

import (
	"context"

	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
	"github.com/workhub/backend/internal/infrastructure/telemetry"
)

// ContactService handles contact-related business operations
type ContactService struct {
	contactRepo directory.ContactRepository
	metrics     *telemetry.WorkspaceMetrics
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo directory.ContactRepository) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
	}
}

// SetMetrics sets the workspace metrics collector
func (s *ContactService) SetMetrics(m *telemetry.WorkspaceMetrics) {
	s.metrics = m
}

func (s *ContactService) recordWrite(ctx context.Context, tenantID, operation string) {
	if s.metrics != nil {
		s.metrics.RecordEntityWrite(ctx, tenantID, "contacts", operation)
	}
}

// Create creates a new contact
func (s *ContactService) Create(ctx context.Context, tenantID string, req CreateContactRequest) (*ContactResponse, error) {
	contact, err := directory.NewContact(tenantID, req.Name, directory.ContactType(req.Type))
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		if err := contact.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	contact.Phone = req.Phone
	contact.Company = req.Company
	contact.Role = req.Role
	contact.HourlyRate = req.HourlyRate
	contact.Notes = req.Notes

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "create")
	response := ToContactResponse(contact)
	return &response, nil
}

// GetByID retrieves a contact by ID
func (s *ContactService) GetByID(ctx context.Context, tenantID string, contactID uint) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForTenant(ctx, tenantID, contactID)
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// List retrieves contacts with filtering and pagination
func (s *ContactService) List(ctx context.Context, tenantID string, filter ContactListFilter) (*shared.Paginated[ContactResponse], error) {
	domainFilter := shared.Filter{
		Limit:   filter.Limit,
		Offset:  filter.Offset,
		Search:  filter.Search,
		Filters: make(map[string]interface{}),
	}
	domainFilter.Normalize()

	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Company != "" {
		domainFilter.Filters["company"] = filter.Company
	}
	if !filter.IncludeArchived {
		domainFilter.Filters["is_archived"] = false
	}

	contacts, err := s.contactRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.contactRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToContactResponses(contacts), total, domainFilter.Limit, domainFilter.Offset)
	return &page, nil
}

// Update updates a contact
func (s *ContactService) Update(ctx context.Context, tenantID string, contactID uint, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForTenant(ctx, tenantID, contactID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := contact.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		if err := contact.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Type != nil {
		if err := contact.SetType(directory.ContactType(*req.Type)); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Company != nil {
		contact.Company = *req.Company
	}
	if req.Role != nil {
		contact.Role = *req.Role
	}
	if req.HourlyRate != nil {
		contact.HourlyRate = req.HourlyRate
	}
	if req.Notes != nil {
		contact.Notes = *req.Notes
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToContactResponse(contact)
	return &response, nil
}

// Delete removes a contact
func (s *ContactService) Delete(ctx context.Context, tenantID string, contactID uint) error {
	if err := s.contactRepo.Delete(ctx, tenantID, contactID); err != nil {
		return err
	}
	s.recordWrite(ctx, tenantID, "delete")
	return nil
}

// Archive marks a contact as archived
func (s *ContactService) Archive(ctx context.Context, tenantID string, contactID uint) (*ContactResponse, error) {
	return s.setArchived(ctx, tenantID, contactID, true)
}

// Unarchive clears a contact's archived flag
func (s *ContactService) Unarchive(ctx context.Context, tenantID string, contactID uint) (*ContactResponse, error) {
	return s.setArchived(ctx, tenantID, contactID, false)
}

func (s *ContactService) setArchived(ctx context.Context, tenantID string, contactID uint, archived bool) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForTenant(ctx, tenantID, contactID)
	if err != nil {
		return nil, err
	}

	if archived {
		contact.Archive()
	} else {
		contact.Unarchive()
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToContactResponse(contact)
	return &response, nil
}

// Stats returns contact counts by type plus the archived tally.
// An unknown tenant yields zeroes, not an error.
func (s *ContactService) Stats(ctx context.Context, tenantID string) (*ContactStatsResponse, error) {
	byType, err := s.contactRepo.CountByType(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	archived, err := s.contactRepo.CountArchived(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	stats := &ContactStatsResponse{
		ByType:   make(map[string]int64, len(byType)),
		Archived: archived,
	}
	for contactType, count := range byType {
		stats.ByType[string(contactType)] = count
		stats.Total += count
	}
	return stats, nil
}

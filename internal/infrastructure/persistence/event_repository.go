package persistence

import (
	"context"
	"time"

	"github.com/workhub/backend/internal/domain/calendar"
	"github.com/workhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEventRepository implements calendar.Repository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// SaveWithParticipants writes the event and its participant rows in one
// transaction
func (r *GormEventRepository) SaveWithParticipants(ctx context.Context, e *calendar.Event, participants []calendar.Participant) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Organizer", "Participants").Save(e).Error; err != nil {
			return err
		}
		for i := range participants {
			participants[i].EventID = e.ID
			if err := tx.Omit("Contact").Save(&participants[i]).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// Save creates or updates an event
func (r *GormEventRepository) Save(ctx context.Context, e *calendar.Event) error {
	return translateError(r.db.WithContext(ctx).Omit("Organizer", "Participants").Save(e).Error)
}

// FindByIDForTenant finds an event by ID within a tenant, eager-loading
// organizer and participants with their contacts
func (r *GormEventRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*calendar.Event, error) {
	var e calendar.Event
	if err := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Participants").
		Preload("Participants.Contact").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&e).Error; err != nil {
		return nil, translateError(err)
	}
	return &e, nil
}

// FindAllForTenant finds all events for a tenant matching the filter,
// ordered by start time
func (r *GormEventRepository) FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]calendar.Event, error) {
	var events []calendar.Event
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&calendar.Event{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	query = query.Preload("Organizer").
		Order("starts_at ASC, id ASC").
		Limit(filter.Limit).Offset(filter.Offset)

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CountForTenant counts events for a tenant matching the filter
func (r *GormEventRepository) CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&calendar.Event{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsForTenant checks whether an event exists within a tenant
func (r *GormEventRepository) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&calendar.Event{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByIDsForTenant finds multiple events by their IDs
func (r *GormEventRepository) FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]calendar.Event, error) {
	if len(ids) == 0 {
		return []calendar.Event{}, nil
	}
	var events []calendar.Event
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("starts_at ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindInWindow lists non-cancelled events overlapping [from, to)
func (r *GormEventRepository) FindInWindow(ctx context.Context, tenantID string, from, to time.Time) ([]calendar.Event, error) {
	var events []calendar.Event
	if err := r.db.WithContext(ctx).
		Preload("Organizer").
		Where("tenant_id = ? AND is_cancelled = ?", tenantID, false).
		Where("starts_at < ? AND ends_at >= ?", to, from).
		Order("starts_at ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindOccurrences lists the occurrence instances of a recurrence
// parent, oldest first
func (r *GormEventRepository) FindOccurrences(ctx context.Context, tenantID string, parentID uint) ([]calendar.Event, error) {
	var events []calendar.Event
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND parent_event_id = ?", tenantID, parentID).
		Order("created_at ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteCascade removes the event, its participants and reminders in
// one transaction. Occurrences of a deleted recurrence parent become
// standalone events.
func (r *GormEventRepository) DeleteCascade(ctx context.Context, tenantID string, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&calendar.Event{}).
			Where("tenant_id = ? AND parent_event_id = ?", tenantID, id).
			Update("parent_event_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&calendar.Participant{}, "tenant_id = ? AND event_id = ?", tenantID, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&calendar.Reminder{}, "tenant_id = ? AND event_id = ?", tenantID, id).Error; err != nil {
			return err
		}
		result := tx.Delete(&calendar.Event{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// SaveParticipant creates or updates a participant
func (r *GormEventRepository) SaveParticipant(ctx context.Context, p *calendar.Participant) error {
	return translateError(r.db.WithContext(ctx).Omit("Contact").Save(p).Error)
}

// FindParticipant finds a participant by event and contact
func (r *GormEventRepository) FindParticipant(ctx context.Context, tenantID string, eventID, contactID uint) (*calendar.Participant, error) {
	var p calendar.Participant
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND event_id = ? AND contact_id = ?", tenantID, eventID, contactID).
		First(&p).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// ParticipantExists checks whether a (event, contact) pair already exists
func (r *GormEventRepository) ParticipantExists(ctx context.Context, tenantID string, eventID, contactID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&calendar.Participant{}).
		Where("tenant_id = ? AND event_id = ? AND contact_id = ?", tenantID, eventID, contactID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteParticipant removes a participant row
func (r *GormEventRepository) DeleteParticipant(ctx context.Context, tenantID string, eventID, contactID uint) error {
	result := r.db.WithContext(ctx).
		Delete(&calendar.Participant{}, "tenant_id = ? AND event_id = ? AND contact_id = ?", tenantID, eventID, contactID)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SaveReminder creates or updates a reminder
func (r *GormEventRepository) SaveReminder(ctx context.Context, rem *calendar.Reminder) error {
	return translateError(r.db.WithContext(ctx).Save(rem).Error)
}

// FindRemindersByEvent lists reminders of an event ordered by time
func (r *GormEventRepository) FindRemindersByEvent(ctx context.Context, tenantID string, eventID uint) ([]calendar.Reminder, error) {
	var reminders []calendar.Reminder
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND event_id = ?", tenantID, eventID).
		Order("remind_at ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// FindReminderByIDForTenant finds a reminder by ID within a tenant
func (r *GormEventRepository) FindReminderByIDForTenant(ctx context.Context, tenantID string, id uint) (*calendar.Reminder, error) {
	var rem calendar.Reminder
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&rem).Error; err != nil {
		return nil, translateError(err)
	}
	return &rem, nil
}

// DeleteReminder deletes a reminder within a tenant
func (r *GormEventRepository) DeleteReminder(ctx context.Context, tenantID string, id uint) error {
	result := r.db.WithContext(ctx).Delete(&calendar.Reminder{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// StatsForTenant computes upcoming, this-week and cancelled counts.
// The week window is [weekStart, weekStart+7d).
func (r *GormEventRepository) StatsForTenant(ctx context.Context, tenantID string, now, weekStart time.Time) (*calendar.Stats, error) {
	stats := &calendar.Stats{}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&calendar.Event{}).Where("tenant_id = ?", tenantID)
	}

	if err := base().
		Where("is_cancelled = ? AND starts_at >= ?", false, now).
		Count(&stats.Upcoming).Error; err != nil {
		return nil, err
	}
	weekEnd := weekStart.AddDate(0, 0, 7)
	if err := base().
		Where("is_cancelled = ?", false).
		Where("starts_at >= ? AND starts_at < ?", weekStart, weekEnd).
		Count(&stats.ThisWeek).Error; err != nil {
		return nil, err
	}
	if err := base().
		Where("is_cancelled = ?", true).
		Count(&stats.Cancelled).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// applyFilter applies search, window and field filters to the query
func (r *GormEventRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	includeCancelled := false
	if v, ok := filter.Filters["include_cancelled"]; ok {
		includeCancelled, _ = v.(bool)
	}
	if !includeCancelled {
		query = query.Where("is_cancelled = ?", false)
	}
	for key, value := range filter.Filters {
		switch key {
		case "organizer_id":
			query = query.Where("organizer_id = ?", value)
		case "from":
			if from, ok := value.(time.Time); ok {
				query = query.Where("ends_at >= ?", from)
			}
		case "to":
			if to, ok := value.(time.Time); ok {
				query = query.Where("starts_at < ?", to)
			}
		}
	}
	return query
}

// Ensure GormEventRepository implements Repository
var _ calendar.Repository = (*GormEventRepository)(nil)

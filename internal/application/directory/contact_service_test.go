package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Save(ctx context.Context, contact *directory.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*directory.Contact, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Contact), args.Error(1)
}

func (m *MockContactRepository) FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]directory.Contact, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]directory.Contact), args.Error(1)
}

func (m *MockContactRepository) CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, tenantID string, id uint) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockContactRepository) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactRepository) CountByType(ctx context.Context, tenantID string) (map[directory.ContactType]int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(map[directory.ContactType]int64), args.Error(1)
}

func (m *MockContactRepository) CountArchived(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func TestContactServiceCreate(t *testing.T) {
	repo := new(MockContactRepository)
	service := NewContactService(repo)
	ctx := context.Background()

	repo.On("Save", ctx, mock.AnythingOfType("*directory.Contact")).Return(nil)

	resp, err := service.Create(ctx, "acme", CreateContactRequest{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Type:  "internal",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", resp.Name)
	assert.Equal(t, "internal", resp.Type)
	assert.Equal(t, "acme", resp.TenantID)
	repo.AssertExpectations(t)
}

func TestContactServiceCreateInvalidEmail(t *testing.T) {
	repo := new(MockContactRepository)
	service := NewContactService(repo)

	_, err := service.Create(context.Background(), "acme", CreateContactRequest{
		Name:  "Ada",
		Email: "not-an-email",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	repo.AssertNotCalled(t, "Save")
}

func TestContactServiceCreateDefaultsType(t *testing.T) {
	repo := new(MockContactRepository)
	service := NewContactService(repo)
	ctx := context.Background()

	repo.On("Save", ctx, mock.AnythingOfType("*directory.Contact")).Return(nil)

	resp, err := service.Create(ctx, "acme", CreateContactRequest{Name: "Ada"})

	assert.NoError(t, err)
	assert.Equal(t, "customer", resp.Type)
}

func TestContactServiceUpdateNotFound(t *testing.T) {
	repo := new(MockContactRepository)
	service := NewContactService(repo)
	ctx := context.Background()

	repo.On("FindByIDForTenant", ctx, "acme", uint(42)).Return(nil, shared.ErrNotFound)

	name := "New Name"
	_, err := service.Update(ctx, "acme", 42, UpdateContactRequest{Name: &name})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestContactServiceListExcludesArchivedByDefault(t *testing.T) {
	repo := new(MockContactRepository)
	service := NewContactService(repo)
	ctx := context.Background()

	expectedFilter := mock.MatchedBy(func(f shared.Filter) bool {
		archived, ok := f.Filters["is_archived"]
		return ok && archived == false && f.Limit == 50
	})
	repo.On("FindAllForTenant", ctx, "acme", expectedFilter).Return([]directory.Contact{}, nil)
	repo.On("CountForTenant", ctx, "acme", expectedFilter).Return(int64(0), nil)

	page, err := service.List(ctx, "acme", ContactListFilter{})

	assert.NoError(t, err)
	assert.Zero(t, page.Total)
	repo.AssertExpectations(t)
}

func TestContactServiceArchive(t *testing.T) {
	repo := new(MockContactRepository)
	service := NewContactService(repo)
	ctx := context.Background()

	contact, err := directory.NewContact("acme", "Ada", directory.ContactTypeInternal)
	assert.NoError(t, err)
	contact.ID = 7

	repo.On("FindByIDForTenant", ctx, "acme", uint(7)).Return(contact, nil)
	repo.On("Save", ctx, contact).Return(nil)

	resp, err := service.Archive(ctx, "acme", 7)

	assert.NoError(t, err)
	assert.True(t, resp.IsArchived)
}

func TestContactServiceStats(t *testing.T) {
	repo := new(MockContactRepository)
	service := NewContactService(repo)
	ctx := context.Background()

	repo.On("CountByType", ctx, "acme").Return(map[directory.ContactType]int64{
		directory.ContactTypeCustomer: 3,
		directory.ContactTypeInternal: 2,
	}, nil)
	repo.On("CountArchived", ctx, "acme").Return(int64(1), nil)

	stats, err := service.Stats(ctx, "acme")

	assert.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(3), stats.ByType["customer"])
	assert.Equal(t, int64(1), stats.Archived)
}

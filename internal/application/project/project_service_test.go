package project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/workhub/backend/internal/domain/calendar"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/document"
	"github.com/workhub/backend/internal/domain/project"
	"github.com/workhub/backend/internal/domain/shared"
	"github.com/workhub/backend/internal/domain/task"
)

// MockProjectRepository is a mock implementation of project.Repository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) SaveWithMembers(ctx context.Context, p *project.Project, members []project.Member) error {
	args := m.Called(ctx, p, members)
	return args.Error(0)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*project.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) DeleteCascade(ctx context.Context, tenantID string, id uint) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProjectRepository) SaveMember(ctx context.Context, member *project.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockProjectRepository) FindMember(ctx context.Context, tenantID string, projectID, contactID uint) (*project.Member, error) {
	args := m.Called(ctx, tenantID, projectID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Member), args.Error(1)
}

func (m *MockProjectRepository) MemberExists(ctx context.Context, tenantID string, projectID, contactID uint) (bool, error) {
	args := m.Called(ctx, tenantID, projectID, contactID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) DeleteMember(ctx context.Context, tenantID string, projectID, contactID uint) error {
	args := m.Called(ctx, tenantID, projectID, contactID)
	return args.Error(0)
}

func (m *MockProjectRepository) CountMembersWithRole(ctx context.Context, tenantID string, projectID uint, role project.Role) (int64, error) {
	args := m.Called(ctx, tenantID, projectID, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) SaveLink(ctx context.Context, kind project.LinkKind, tenantID string, projectID, targetID uint) error {
	args := m.Called(ctx, kind, tenantID, projectID, targetID)
	return args.Error(0)
}

func (m *MockProjectRepository) LinkExists(ctx context.Context, kind project.LinkKind, tenantID string, projectID, targetID uint) (bool, error) {
	args := m.Called(ctx, kind, tenantID, projectID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) DeleteLink(ctx context.Context, kind project.LinkKind, tenantID string, projectID, targetID uint) error {
	args := m.Called(ctx, kind, tenantID, projectID, targetID)
	return args.Error(0)
}

func (m *MockProjectRepository) LinkedIDs(ctx context.Context, kind project.LinkKind, tenantID string, projectID uint) ([]uint, error) {
	args := m.Called(ctx, kind, tenantID, projectID)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockProjectRepository) CountLinks(ctx context.Context, tenantID string, projectID uint) (*project.LinkCounts, error) {
	args := m.Called(ctx, tenantID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.LinkCounts), args.Error(1)
}

func (m *MockProjectRepository) AppendActivity(ctx context.Context, a *project.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockProjectRepository) FindActivities(ctx context.Context, tenantID string, projectID uint, filter shared.Filter) ([]project.Activity, error) {
	args := m.Called(ctx, tenantID, projectID, filter)
	return args.Get(0).([]project.Activity), args.Error(1)
}

func (m *MockProjectRepository) StatsForTenant(ctx context.Context, tenantID string) (*project.Stats, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Stats), args.Error(1)
}

// MockContactLookup is a mock implementation of directory.ContactRepository
type MockContactLookup struct {
	mock.Mock
}

func (m *MockContactLookup) Save(ctx context.Context, contact *directory.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactLookup) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*directory.Contact, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Contact), args.Error(1)
}

func (m *MockContactLookup) FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]directory.Contact, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]directory.Contact), args.Error(1)
}

func (m *MockContactLookup) CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContactLookup) Delete(ctx context.Context, tenantID string, id uint) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockContactLookup) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactLookup) CountByType(ctx context.Context, tenantID string) (map[directory.ContactType]int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(map[directory.ContactType]int64), args.Error(1)
}

func (m *MockContactLookup) CountArchived(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTaskSource is a mock implementation of TaskSource
type MockTaskSource struct {
	mock.Mock
}

func (m *MockTaskSource) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskSource) FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]task.Task, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]task.Task), args.Error(1)
}

// MockDocumentSource is a mock implementation of DocumentSource
type MockDocumentSource struct {
	mock.Mock
}

func (m *MockDocumentSource) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentSource) FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]document.Document, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]document.Document), args.Error(1)
}

// MockEventSource is a mock implementation of EventSource
type MockEventSource struct {
	mock.Mock
}

func (m *MockEventSource) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventSource) FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]calendar.Event, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]calendar.Event), args.Error(1)
}

type projectMocks struct {
	repo      *MockProjectRepository
	contacts  *MockContactLookup
	tasks     *MockTaskSource
	documents *MockDocumentSource
	events    *MockEventSource
}

func newProjectService() (*ProjectService, *projectMocks) {
	m := &projectMocks{
		repo:      new(MockProjectRepository),
		contacts:  new(MockContactLookup),
		tasks:     new(MockTaskSource),
		documents: new(MockDocumentSource),
		events:    new(MockEventSource),
	}
	return NewProjectService(m.repo, m.contacts, m.tasks, m.documents, m.events), m
}

func testDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestProjectServiceCreateOwnerBecomesMember(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	owner := uint(5)
	m.contacts.On("ExistsForTenant", ctx, "acme", owner).Return(true, nil)
	m.contacts.On("ExistsForTenant", ctx, "acme", uint(7)).Return(true, nil)

	var saved []project.Member
	m.repo.On("SaveWithMembers", ctx, mock.AnythingOfType("*project.Project"), mock.AnythingOfType("[]project.Member")).
		Run(func(args mock.Arguments) {
			saved = args.Get(2).([]project.Member)
		}).
		Return(nil)

	resp, err := service.Create(ctx, "acme", CreateProjectRequest{
		Name:      "Website relaunch",
		OwnerID:   &owner,
		MemberIDs: []uint{7, 7},
	})

	assert.NoError(t, err)
	assert.Equal(t, "planning", resp.Status)
	assert.Len(t, saved, 2)

	roles := make(map[uint]project.Role, len(saved))
	for _, member := range saved {
		roles[member.ContactID] = member.Role
	}
	assert.Equal(t, project.RoleMember, roles[7])
	assert.Equal(t, project.RoleOwner, roles[owner])
}

func TestProjectServiceCreateWithPriorityAndClient(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	client := uint(8)
	m.contacts.On("ExistsForTenant", ctx, "acme", client).Return(true, nil)
	m.repo.On("SaveWithMembers", ctx, mock.AnythingOfType("*project.Project"), mock.AnythingOfType("[]project.Member")).Return(nil)

	resp, err := service.Create(ctx, "acme", CreateProjectRequest{
		Name:     "Website relaunch",
		Priority: "critical",
		ClientID: &client,
		IsPublic: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, "critical", resp.Priority)
	assert.Equal(t, &client, resp.ClientID)
	assert.True(t, resp.IsPublic)
	assert.False(t, resp.IsArchived)
}

func TestProjectServiceCreateUnknownClient(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	client := uint(99)
	m.contacts.On("ExistsForTenant", ctx, "acme", client).Return(false, nil)

	_, err := service.Create(ctx, "acme", CreateProjectRequest{Name: "Doomed", ClientID: &client})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	m.repo.AssertNotCalled(t, "SaveWithMembers", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectServiceArchiveRoundTrip(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	p, err := project.NewProject("acme", "Relaunch")
	assert.NoError(t, err)
	p.ID = 1

	m.repo.On("FindByIDForTenant", ctx, "acme", uint(1)).Return(p, nil)
	m.repo.On("Save", ctx, p).Return(nil)

	resp, err := service.Archive(ctx, "acme", 1)
	assert.NoError(t, err)
	assert.True(t, resp.IsArchived)

	resp, err = service.Unarchive(ctx, "acme", 1)
	assert.NoError(t, err)
	assert.False(t, resp.IsArchived)
}

func TestProjectServiceCreateUnknownOwner(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	owner := uint(99)
	m.contacts.On("ExistsForTenant", ctx, "acme", owner).Return(false, nil)

	_, err := service.Create(ctx, "acme", CreateProjectRequest{Name: "Doomed", OwnerID: &owner})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	m.repo.AssertNotCalled(t, "SaveWithMembers", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectServiceCreateInvertedSchedule(t *testing.T) {
	service, _ := newProjectService()
	ctx := context.Background()

	starts := testDate(2026, 3, 10)
	ends := testDate(2026, 3, 1)
	_, err := service.Create(ctx, "acme", CreateProjectRequest{
		Name:     "Backwards",
		StartsOn: &starts,
		EndsOn:   &ends,
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}

func TestProjectServiceAddMemberDuplicate(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	m.repo.On("ExistsForTenant", ctx, "acme", uint(1)).Return(true, nil)
	m.contacts.On("ExistsForTenant", ctx, "acme", uint(7)).Return(true, nil)
	m.repo.On("MemberExists", ctx, "acme", uint(1), uint(7)).Return(true, nil)

	_, err := service.AddMember(ctx, "acme", 1, AddMemberRequest{ContactID: 7})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	m.repo.AssertNotCalled(t, "SaveMember", mock.Anything, mock.Anything)
}

func TestProjectServiceRemoveLastOwnerRejected(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	member := &project.Member{
		TenantEntity: shared.TenantEntity{TenantID: "acme"},
		ProjectID:    1,
		ContactID:    5,
		Role:         project.RoleOwner,
	}
	m.repo.On("FindMember", ctx, "acme", uint(1), uint(5)).Return(member, nil)
	m.repo.On("CountMembersWithRole", ctx, "acme", uint(1), project.RoleOwner).Return(int64(1), nil)

	err := service.RemoveMember(ctx, "acme", 1, 5, nil)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	m.repo.AssertNotCalled(t, "DeleteMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectServiceDemoteLastOwnerRejected(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	member := &project.Member{
		TenantEntity: shared.TenantEntity{TenantID: "acme"},
		ProjectID:    1,
		ContactID:    5,
		Role:         project.RoleOwner,
	}
	m.repo.On("FindMember", ctx, "acme", uint(1), uint(5)).Return(member, nil)
	m.repo.On("CountMembersWithRole", ctx, "acme", uint(1), project.RoleOwner).Return(int64(1), nil)

	_, err := service.ChangeRole(ctx, "acme", 1, 5, ChangeRoleRequest{Role: "member"})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestProjectServiceChangeRoleWithSecondOwner(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	member := &project.Member{
		TenantEntity: shared.TenantEntity{TenantID: "acme"},
		ProjectID:    1,
		ContactID:    5,
		Role:         project.RoleOwner,
	}
	m.repo.On("FindMember", ctx, "acme", uint(1), uint(5)).Return(member, nil)
	m.repo.On("CountMembersWithRole", ctx, "acme", uint(1), project.RoleOwner).Return(int64(2), nil)
	m.repo.On("SaveMember", ctx, member).Return(nil)
	m.repo.On("AppendActivity", ctx, mock.AnythingOfType("*project.Activity")).Return(nil)

	resp, err := service.ChangeRole(ctx, "acme", 1, 5, ChangeRoleRequest{Role: "manager"})

	assert.NoError(t, err)
	assert.Equal(t, "manager", resp.Role)
}

func TestProjectServiceLinkTask(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	m.repo.On("ExistsForTenant", ctx, "acme", uint(1)).Return(true, nil)
	m.tasks.On("ExistsForTenant", ctx, "acme", uint(42)).Return(true, nil)
	m.repo.On("LinkExists", ctx, project.LinkTask, "acme", uint(1), uint(42)).Return(false, nil)
	m.repo.On("SaveLink", ctx, project.LinkTask, "acme", uint(1), uint(42)).Return(nil)

	var activity *project.Activity
	m.repo.On("AppendActivity", ctx, mock.AnythingOfType("*project.Activity")).
		Run(func(args mock.Arguments) {
			activity = args.Get(1).(*project.Activity)
		}).
		Return(nil)

	err := service.LinkTask(ctx, "acme", 1, LinkRequest{TargetID: 42})

	assert.NoError(t, err)
	assert.Equal(t, "task_linked", activity.Action)
}

func TestProjectServiceLinkUnknownTarget(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	m.repo.On("ExistsForTenant", ctx, "acme", uint(1)).Return(true, nil)
	m.documents.On("ExistsForTenant", ctx, "acme", uint(42)).Return(false, nil)

	err := service.LinkDocument(ctx, "acme", 1, LinkRequest{TargetID: 42})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	m.repo.AssertNotCalled(t, "SaveLink", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectServiceLinkDuplicate(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	m.repo.On("ExistsForTenant", ctx, "acme", uint(1)).Return(true, nil)
	m.events.On("ExistsForTenant", ctx, "acme", uint(9)).Return(true, nil)
	m.repo.On("LinkExists", ctx, project.LinkEvent, "acme", uint(1), uint(9)).Return(true, nil)

	err := service.LinkEvent(ctx, "acme", 1, LinkRequest{TargetID: 9})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestProjectServiceUnlinkMissing(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	m.repo.On("LinkExists", ctx, project.LinkTask, "acme", uint(1), uint(42)).Return(false, nil)

	err := service.UnlinkTask(ctx, "acme", 1, 42, nil)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProjectServiceLinkedTasks(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	m.repo.On("ExistsForTenant", ctx, "acme", uint(1)).Return(true, nil)
	m.repo.On("LinkedIDs", ctx, project.LinkTask, "acme", uint(1)).Return([]uint{3, 4}, nil)
	m.tasks.On("FindByIDsForTenant", ctx, "acme", []uint{3, 4}).Return([]task.Task{
		{TenantEntity: shared.TenantEntity{ID: 3, TenantID: "acme"}, Title: "Write copy", Status: task.StatusTodo, Priority: task.PriorityMedium},
		{TenantEntity: shared.TenantEntity{ID: 4, TenantID: "acme"}, Title: "Ship it", Status: task.StatusDone, Priority: task.PriorityHigh},
	}, nil)

	tasks, err := service.LinkedTasks(ctx, "acme", 1)

	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, "Write copy", tasks[0].Title)
}

func TestProjectServiceLinkedTasksEmpty(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	m.repo.On("ExistsForTenant", ctx, "acme", uint(1)).Return(true, nil)
	m.repo.On("LinkedIDs", ctx, project.LinkTask, "acme", uint(1)).Return([]uint{}, nil)

	tasks, err := service.LinkedTasks(ctx, "acme", 1)

	assert.NoError(t, err)
	assert.Empty(t, tasks)
	m.tasks.AssertNotCalled(t, "FindByIDsForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectServiceStats(t *testing.T) {
	service, m := newProjectService()
	ctx := context.Background()

	m.repo.On("StatsForTenant", ctx, "acme").Return(&project.Stats{
		ByStatus: map[project.Status]int64{
			project.StatusActive:    3,
			project.StatusCompleted: 2,
		},
	}, nil)

	stats, err := service.Stats(ctx, "acme")

	assert.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(3), stats.ByStatus["active"])
}

package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workhub/backend/internal/domain/document"
	"github.com/workhub/backend/internal/domain/shared"
)

func newFolderService() (*FolderService, *MockFolderRepository, *MockDocumentRepository, *MockContactLookup) {
	folders := new(MockFolderRepository)
	docs := new(MockDocumentRepository)
	contacts := new(MockContactLookup)
	return NewFolderService(folders, docs, contacts), folders, docs, contacts
}

func storedFolder(t *testing.T, id uint, name string, parentID *uint) *document.Folder {
	t.Helper()
	f, err := document.NewFolder("acme", name, parentID)
	require.NoError(t, err)
	f.ID = id
	return f
}

func TestFolderServiceCreateUnknownParent(t *testing.T) {
	service, folders, _, _ := newFolderService()
	ctx := context.Background()

	parentID := uint(99)
	folders.On("ExistsForTenant", ctx, "acme", parentID).Return(false, nil)

	_, err := service.Create(ctx, "acme", CreateFolderRequest{
		Name:     "Reports",
		ParentID: &parentID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	folders.AssertNotCalled(t, "Save")
}

func TestFolderServiceCreateUnknownCreator(t *testing.T) {
	service, folders, _, contacts := newFolderService()
	ctx := context.Background()

	creatorID := uint(12)
	contacts.On("ExistsForTenant", ctx, "acme", creatorID).Return(false, nil)

	_, err := service.Create(ctx, "acme", CreateFolderRequest{
		Name:      "Reports",
		CreatorID: &creatorID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	folders.AssertNotCalled(t, "Save")
}

func TestFolderServiceUpdateSelfParent(t *testing.T) {
	service, folders, _, _ := newFolderService()
	ctx := context.Background()

	folderID := uint(5)
	folders.On("FindByIDForTenant", ctx, "acme", folderID).
		Return(storedFolder(t, folderID, "Reports", nil), nil)
	folders.On("ExistsForTenant", ctx, "acme", folderID).Return(true, nil)

	_, err := service.Update(ctx, "acme", folderID, UpdateFolderRequest{ParentID: &folderID})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	folders.AssertNotCalled(t, "Save")
}

func TestFolderServiceUpdateRejectsCycle(t *testing.T) {
	service, folders, _, _ := newFolderService()
	ctx := context.Background()

	// tree: 1 <- 2; moving 1 under 2 would loop
	parentOfTwo := uint(1)
	folders.On("FindByIDForTenant", ctx, "acme", uint(1)).
		Return(storedFolder(t, 1, "root", nil), nil)
	folders.On("ExistsForTenant", ctx, "acme", uint(2)).Return(true, nil)
	folders.On("ParentOf", ctx, "acme", uint(2)).Return(&parentOfTwo, nil)

	newParent := uint(2)
	_, err := service.Update(ctx, "acme", 1, UpdateFolderRequest{ParentID: &newParent})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	folders.AssertNotCalled(t, "Save")
}

func TestFolderServiceDeleteNonEmpty(t *testing.T) {
	service, folders, _, _ := newFolderService()
	ctx := context.Background()

	folders.On("CountChildren", ctx, "acme", uint(3)).Return(int64(1), nil)

	err := service.Delete(ctx, "acme", 3)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	folders.AssertNotCalled(t, "Delete")
}

func TestFolderServiceDeleteWithDocuments(t *testing.T) {
	service, folders, docs, _ := newFolderService()
	ctx := context.Background()

	folders.On("CountChildren", ctx, "acme", uint(7)).Return(int64(0), nil)
	docs.On("CountInFolder", ctx, "acme", uint(7)).Return(int64(3), nil)

	err := service.Delete(ctx, "acme", 7)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	folders.AssertNotCalled(t, "Delete")
}

func TestFolderServiceDeleteEmpty(t *testing.T) {
	service, folders, docs, _ := newFolderService()
	ctx := context.Background()

	folders.On("CountChildren", ctx, "acme", uint(7)).Return(int64(0), nil)
	docs.On("CountInFolder", ctx, "acme", uint(7)).Return(int64(0), nil)
	folders.On("Delete", ctx, "acme", uint(7)).Return(nil)

	err := service.Delete(ctx, "acme", 7)

	require.NoError(t, err)
	folders.AssertExpectations(t)
}

func TestFolderServiceContentsRootLevel(t *testing.T) {
	service, folders, docs, _ := newFolderService()
	ctx := context.Background()

	folders.On("FindAllForTenant", ctx, "acme", (*uint)(nil), true).
		Return([]document.Folder{*storedFolder(t, 1, "Reports", nil)}, nil)
	docs.On("FindAllForTenant", ctx, "acme", mock.MatchedBy(func(f shared.Filter) bool {
		v, ok := f.Filters["folder_id"]
		return ok && v == nil
	})).Return([]document.Document{}, nil)

	resp, err := service.Contents(ctx, "acme", 0)

	require.NoError(t, err)
	assert.Nil(t, resp.Folder)
	assert.Len(t, resp.Subfolders, 1)
	assert.Empty(t, resp.Documents)
}

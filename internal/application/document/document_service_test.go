package document

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/document"
	"github.com/workhub/backend/internal/domain/shared"
)

// MockDocumentRepository is a mock implementation of document.Repository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Save(ctx context.Context, d *document.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*document.Document, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAllForTenant(ctx context.Context, tenantID string, filter shared.Filter) ([]document.Document, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *MockDocumentRepository) CountForTenant(ctx context.Context, tenantID string, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]document.Document, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *MockDocumentRepository) CountInFolder(ctx context.Context, tenantID string, folderID uint) (int64, error) {
	args := m.Called(ctx, tenantID, folderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, tenantID string, id uint) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) IncrementDownloadCount(ctx context.Context, tenantID string, id uint) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) Totals(ctx context.Context, tenantID string) (*document.StorageTotals, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.StorageTotals), args.Error(1)
}

func (m *MockDocumentRepository) SaveShare(ctx context.Context, s *document.Share) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindSharesByDocument(ctx context.Context, tenantID string, documentID uint) ([]document.Share, error) {
	args := m.Called(ctx, tenantID, documentID)
	return args.Get(0).([]document.Share), args.Error(1)
}

func (m *MockDocumentRepository) FindShareByIDForTenant(ctx context.Context, tenantID string, shareID uint) (*document.Share, error) {
	args := m.Called(ctx, tenantID, shareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Share), args.Error(1)
}

func (m *MockDocumentRepository) ShareExists(ctx context.Context, tenantID string, documentID, contactID uint) (bool, error) {
	args := m.Called(ctx, tenantID, documentID, contactID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) DeleteShare(ctx context.Context, tenantID string, shareID uint) error {
	args := m.Called(ctx, tenantID, shareID)
	return args.Error(0)
}

// MockFolderRepository is a mock implementation of document.FolderRepository
type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) Save(ctx context.Context, f *document.Folder) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFolderRepository) FindByIDForTenant(ctx context.Context, tenantID string, id uint) (*document.Folder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Folder), args.Error(1)
}

func (m *MockFolderRepository) FindAllForTenant(ctx context.Context, tenantID string, parentID *uint, rootOnly bool) ([]document.Folder, error) {
	args := m.Called(ctx, tenantID, parentID, rootOnly)
	return args.Get(0).([]document.Folder), args.Error(1)
}

func (m *MockFolderRepository) Delete(ctx context.Context, tenantID string, id uint) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockFolderRepository) ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFolderRepository) ParentOf(ctx context.Context, tenantID string, id uint) (*uint, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uint), args.Error(1)
}

func (m *MockFolderRepository) CountChildren(ctx context.Context, tenantID string, id uint) (int64, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(int64), args.Error(1)
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

// fakeBlobStorage is an in-memory BlobStorage for service tests
type fakeBlobStorage struct {
	objects   map[string][]byte
	uploadErr error
	deleteErr error
}

func newFakeBlobStorage() *fakeBlobStorage {
	return &fakeBlobStorage{objects: make(map[string][]byte)}
}

func (f *fakeBlobStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStorage) DeleteObject(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeBlobStorage) GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://blobs.test/upload/" + key, time.Now().Add(15 * time.Minute), nil
}

func (f *fakeBlobStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://blobs.test/download/" + key, time.Now().Add(15 * time.Minute), nil
}

func newDocumentService(t *testing.T) (*DocumentService, *MockDocumentRepository, *MockFolderRepository, *MockContactLookup, *fakeBlobStorage) {
	t.Helper()
	docs := new(MockDocumentRepository)
	folders := new(MockFolderRepository)
	contacts := new(MockContactLookup)
	store := newFakeBlobStorage()
	return NewDocumentService(docs, folders, contacts, store), docs, folders, contacts, store
}

func TestDocumentServiceUpload(t *testing.T) {
	service, docs, _, _, store := newDocumentService(t)
	ctx := context.Background()

	docs.On("Save", ctx, mock.AnythingOfType("*document.Document")).Return(nil)

	resp, err := service.Upload(ctx, "acme", UploadDocumentRequest{
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Data:        []byte("pdf bytes"),
	})

	require.NoError(t, err)
	assert.Equal(t, "report.pdf", resp.Filename)
	assert.Equal(t, int64(9), resp.SizeBytes)
	assert.Len(t, store.objects, 1)
	for key := range store.objects {
		assert.True(t, strings.HasPrefix(key, "acme/"), "blob key is tenant scoped")
	}
}

func TestDocumentServiceUploadBlobFailureSkipsRow(t *testing.T) {
	service, docs, _, _, store := newDocumentService(t)
	store.uploadErr = errors.New("connection refused")

	_, err := service.Upload(context.Background(), "acme", UploadDocumentRequest{
		Filename: "report.pdf",
		Data:     []byte("x"),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STORAGE_FAILURE", domainErr.Code)
	docs.AssertNotCalled(t, "Save")
}

func TestDocumentServiceUploadRowFailureCleansBlob(t *testing.T) {
	service, docs, _, _, store := newDocumentService(t)
	ctx := context.Background()

	docs.On("Save", ctx, mock.AnythingOfType("*document.Document")).Return(errors.New("insert failed"))

	_, err := service.Upload(ctx, "acme", UploadDocumentRequest{
		Filename: "report.pdf",
		Data:     []byte("x"),
	})

	assert.Error(t, err)
	assert.Empty(t, store.objects, "orphan blob is removed")
}

func TestDocumentServiceConfirmUploadForeignKeyRejected(t *testing.T) {
	service, _, _, _, _ := newDocumentService(t)

	_, err := service.ConfirmUpload(context.Background(), "acme", ConfirmUploadRequest{
		StorageKey: "other-tenant/abc-report.pdf",
		Filename:   "report.pdf",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}

func TestDocumentServiceConfirmUploadMissingObject(t *testing.T) {
	service, _, _, _, _ := newDocumentService(t)

	_, err := service.ConfirmUpload(context.Background(), "acme", ConfirmUploadRequest{
		StorageKey: "acme/abc-report.pdf",
		Filename:   "report.pdf",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}

func TestDocumentServiceDownload(t *testing.T) {
	service, docs, _, _, _ := newDocumentService(t)
	ctx := context.Background()

	d, err := document.NewDocument("acme", "report.pdf", "acme/abc-report.pdf")
	require.NoError(t, err)
	d.ID = 4

	docs.On("FindByIDForTenant", ctx, "acme", uint(4)).Return(d, nil)
	docs.On("IncrementDownloadCount", ctx, "acme", uint(4)).Return(nil)

	resp, err := service.Download(ctx, "acme", 4)

	require.NoError(t, err)
	assert.Contains(t, resp.DownloadURL, "acme/abc-report.pdf")
	docs.AssertExpectations(t)
}

func TestDocumentServiceDeleteAbortsOnStorageError(t *testing.T) {
	service, docs, _, _, store := newDocumentService(t)
	ctx := context.Background()

	d, err := document.NewDocument("acme", "report.pdf", "acme/abc-report.pdf")
	require.NoError(t, err)
	d.ID = 4
	store.deleteErr = errors.New("backend down")

	docs.On("FindByIDForTenant", ctx, "acme", uint(4)).Return(d, nil)

	err = service.Delete(ctx, "acme", 4)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STORAGE_FAILURE", domainErr.Code)
	docs.AssertNotCalled(t, "Delete")
}

func TestDocumentServiceCreateShareUnknownSharer(t *testing.T) {
	service, docs, _, contacts, _ := newDocumentService(t)
	ctx := context.Background()

	sharer := uint(9)
	docs.On("ExistsForTenant", ctx, "acme", uint(4)).Return(true, nil)
	contacts.On("ExistsForTenant", ctx, "acme", uint(7)).Return(true, nil)
	contacts.On("ExistsForTenant", ctx, "acme", uint(9)).Return(false, nil)

	_, err := service.CreateShare(ctx, "acme", 4, CreateShareRequest{
		SharedWithID: 7,
		SharedByID:   &sharer,
		Permission:   string(document.PermissionWrite),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	docs.AssertNotCalled(t, "SaveShare")
}

func TestDocumentServiceListSharesDeletedDocument(t *testing.T) {
	service, docs, _, _, _ := newDocumentService(t)
	ctx := context.Background()

	// No existence gate: lookups on a deleted document id come back
	// empty rather than NOT_FOUND
	docs.On("FindSharesByDocument", ctx, "acme", uint(4)).Return([]document.Share{}, nil)

	shares, err := service.ListShares(ctx, "acme", 4)

	require.NoError(t, err)
	assert.Empty(t, shares)
	docs.AssertNotCalled(t, "ExistsForTenant")
}

func TestDocumentServiceCreateShareDuplicate(t *testing.T) {
	service, docs, _, contacts, _ := newDocumentService(t)
	ctx := context.Background()

	docs.On("ExistsForTenant", ctx, "acme", uint(4)).Return(true, nil)
	contacts.On("ExistsForTenant", ctx, "acme", uint(7)).Return(true, nil)
	docs.On("ShareExists", ctx, "acme", uint(4), uint(7)).Return(true, nil)

	_, err := service.CreateShare(ctx, "acme", 4, CreateShareRequest{SharedWithID: 7})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	docs.AssertNotCalled(t, "SaveShare")
}

func TestDocumentServiceDeleteShareWrongDocument(t *testing.T) {
	service, docs, _, _, _ := newDocumentService(t)
	ctx := context.Background()

	share, err := document.NewShare("acme", 9, 7, nil, document.PermissionRead)
	require.NoError(t, err)
	share.ID = 2

	docs.On("FindShareByIDForTenant", ctx, "acme", uint(2)).Return(share, nil)

	err = service.DeleteShare(ctx, "acme", 4, 2)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	docs.AssertNotCalled(t, "DeleteShare")
}

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStorageRoundTrip(t *testing.T) {
	store, err := NewLocalBlobStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := "acme/123-report.pdf"
	require.NoError(t, store.Upload(ctx, key, []byte("hello"), "application/pdf"))

	exists, err := store.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.DeleteObject(ctx, key))
	exists, err = store.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting again is not an error
	assert.NoError(t, store.DeleteObject(ctx, key))
}

func TestLocalBlobStorageRejectsTraversal(t *testing.T) {
	store, err := NewLocalBlobStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	err = store.Upload(ctx, "../../etc/passwd", []byte("nope"), "text/plain")
	assert.NoError(t, err, "cleaned keys stay under the root")

	exists, err := store.ObjectExists(ctx, "etc/passwd")
	require.NoError(t, err)
	assert.True(t, exists, "traversal segments are stripped, not honored")
}

func TestLocalBlobStorageDownloadURL(t *testing.T) {
	store, err := NewLocalBlobStorage(t.TempDir(), WithBaseURL("/files/"))
	require.NoError(t, err)

	url, expires, err := store.GenerateDownloadURL(context.Background(), "acme/a.txt", 0)
	require.NoError(t, err)
	assert.Equal(t, "/files/acme/a.txt", url)
	assert.False(t, expires.IsZero())

	_, _, err = store.GenerateUploadURL(context.Background(), "acme/a.txt", "text/plain", 0)
	assert.ErrorIs(t, err, ErrPresignNotSupported)
}

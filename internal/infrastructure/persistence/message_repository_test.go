package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/messaging"
	"github.com/workhub/backend/internal/domain/shared"
)

func seedMessage(t *testing.T, repo *GormMessageRepository, tenantID, channel string, senderID uint, content string, parentID *uint) *messaging.Message {
	t.Helper()
	m, err := messaging.NewMessage(tenantID, channel, senderID, content)
	require.NoError(t, err)
	m.ParentID = parentID
	require.NoError(t, repo.Save(context.Background(), m))
	return m
}

func TestMessageRepositoryThread(t *testing.T) {
	db := newTestDB(t)
	contacts := NewGormContactRepository(db)
	repo := NewGormMessageRepository(db)
	ctx := context.Background()

	sender := mustContact(t, contacts, "acme", "Ada", directory.ContactTypeInternal)

	root := seedMessage(t, repo, "acme", "general", sender.ID, "root", nil)
	first := seedMessage(t, repo, "acme", "general", sender.ID, "first reply", &root.ID)
	second := seedMessage(t, repo, "acme", "general", sender.ID, "second reply", &root.ID)
	// unrelated root must not appear in the thread
	seedMessage(t, repo, "acme", "general", sender.ID, "other topic", nil)

	thread, err := repo.FindThread(ctx, "acme", root.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, root.ID, thread[0].ID)
	assert.Equal(t, first.ID, thread[1].ID)
	assert.Equal(t, second.ID, thread[2].ID)
}

func TestMessageRepositoryDeletePromotesChildren(t *testing.T) {
	db := newTestDB(t)
	contacts := NewGormContactRepository(db)
	repo := NewGormMessageRepository(db)
	ctx := context.Background()

	sender := mustContact(t, contacts, "acme", "Ada", directory.ContactTypeInternal)
	root := seedMessage(t, repo, "acme", "general", sender.ID, "root", nil)
	reply := seedMessage(t, repo, "acme", "general", sender.ID, "reply", &root.ID)

	require.NoError(t, repo.DeleteAndPromoteChildren(ctx, "acme", root.ID))

	_, err := repo.FindByIDForTenant(ctx, "acme", root.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	promoted, err := repo.FindByIDForTenant(ctx, "acme", reply.ID)
	require.NoError(t, err)
	assert.Nil(t, promoted.ParentID, "children of a deleted root become roots")

	assert.ErrorIs(t, repo.DeleteAndPromoteChildren(ctx, "acme", root.ID), shared.ErrNotFound)
}

func TestMessageRepositoryRootsAndChannels(t *testing.T) {
	db := newTestDB(t)
	contacts := NewGormContactRepository(db)
	repo := NewGormMessageRepository(db)
	ctx := context.Background()

	sender := mustContact(t, contacts, "acme", "Ada", directory.ContactTypeInternal)
	root := seedMessage(t, repo, "acme", "general", sender.ID, "hello", nil)
	seedMessage(t, repo, "acme", "general", sender.ID, "reply", &root.ID)
	pinned := seedMessage(t, repo, "acme", "general", sender.ID, "pinned", nil)
	pinned.Pin()
	require.NoError(t, repo.Save(ctx, pinned))
	seedMessage(t, repo, "acme", "random", sender.ID, "elsewhere", nil)

	roots, err := repo.FindRootsByChannel(ctx, "acme", "general", false, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, roots, 2, "replies are excluded from the channel listing")

	onlyPinned, err := repo.FindRootsByChannel(ctx, "acme", "general", true, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, onlyPinned, 1)
	assert.Equal(t, pinned.ID, onlyPinned[0].ID)

	channels, err := repo.ListChannels(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, channels, 2)
	for _, ch := range channels {
		assert.False(t, ch.LastActivity.After(time.Now().Add(time.Minute)))
		if ch.Channel == "general" {
			assert.Equal(t, int64(3), ch.MessageCount, "channel counts include replies")
		}
	}
}

package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/shared"
)

func mustContact(t *testing.T, repo *GormContactRepository, tenantID, name string, ctype directory.ContactType) *directory.Contact {
	t.Helper()
	c, err := directory.NewContact(tenantID, name, ctype)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func TestContactRepositoryTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormContactRepository(db)
	ctx := context.Background()

	a := mustContact(t, repo, "tenant-a", "Ada", directory.ContactTypeCustomer)
	mustContact(t, repo, "tenant-b", "Bob", directory.ContactTypeCustomer)

	// cross-tenant reads behave exactly like missing rows
	_, err := repo.FindByIDForTenant(ctx, "tenant-b", a.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	filter := shared.DefaultFilter()
	listA, err := repo.FindAllForTenant(ctx, "tenant-a", filter)
	require.NoError(t, err)
	assert.Len(t, listA, 1)

	// cross-tenant delete touches nothing
	assert.ErrorIs(t, repo.Delete(ctx, "tenant-b", a.ID), shared.ErrNotFound)
	_, err = repo.FindByIDForTenant(ctx, "tenant-a", a.ID)
	assert.NoError(t, err)
}

func TestContactRepositoryFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormContactRepository(db)
	ctx := context.Background()

	mustContact(t, repo, "acme", "Ada Lovelace", directory.ContactTypeInternal)
	mustContact(t, repo, "acme", "Grace Hopper", directory.ContactTypeCustomer)
	archived := mustContact(t, repo, "acme", "Old Friend", directory.ContactTypeCustomer)
	archived.Archive()
	require.NoError(t, repo.Save(ctx, archived))

	filter := shared.DefaultFilter()
	filter.Filters["contact_type"] = directory.ContactTypeInternal
	internal, err := repo.FindAllForTenant(ctx, "acme", filter)
	require.NoError(t, err)
	require.Len(t, internal, 1)
	assert.Equal(t, "Ada Lovelace", internal[0].Name)

	filter = shared.DefaultFilter()
	filter.Search = "grace"
	found, err := repo.FindAllForTenant(ctx, "acme", filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Grace Hopper", found[0].Name)

	filter = shared.DefaultFilter()
	filter.Filters["is_archived"] = true
	got, err := repo.FindAllForTenant(ctx, "acme", filter)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestContactRepositoryCountByType(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormContactRepository(db)
	ctx := context.Background()

	mustContact(t, repo, "acme", "A", directory.ContactTypeCustomer)
	mustContact(t, repo, "acme", "B", directory.ContactTypeCustomer)
	mustContact(t, repo, "acme", "C", directory.ContactTypePartner)

	counts, err := repo.CountByType(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[directory.ContactTypeCustomer])
	assert.Equal(t, int64(1), counts[directory.ContactTypePartner])

	// empty tenant yields zero-valued aggregates, not an error
	empty, err := repo.CountByType(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

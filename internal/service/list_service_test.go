package service

import (
	"context"
	"testing"
	"time"

	"github.com/CleanArchitectureTutorials/PackAndGo/internal/cache"
	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/repo"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/uow"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListService(t *testing.T) (*ListService, *repo.MemoryStore) {
	t.Helper()
	store := repo.NewMemoryStore()
	return NewListService(uow.NewMemory(store), store.PackingLists(), nil), store
}

func TestListServiceCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newListService(t)
	owner := uuid.New()

	l, err := svc.Create(ctx, owner, "Trip")
	require.NoError(t, err)

	got, err := svc.Get(ctx, owner, l.ID())
	require.NoError(t, err)
	assert.Equal(t, "Trip", got.Name())

	// Another owner cannot see it.
	_, err = svc.Get(ctx, uuid.New(), l.ID())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListServiceCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newListService(t)

	_, err := svc.Create(ctx, uuid.New(), "  ")
	assert.ErrorIs(t, err, dom.ErrInvalidArgument)
	_, err = svc.Create(ctx, uuid.Nil, "Trip")
	assert.ErrorIs(t, err, dom.ErrInvalidArgument)
}

func TestListServiceItemFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newListService(t)
	owner := uuid.New()

	l, err := svc.Create(ctx, owner, "Trip")
	require.NoError(t, err)

	it, err := svc.AddItem(ctx, owner, l.ID(), "Socks")
	require.NoError(t, err)

	got, err := svc.PackItem(ctx, owner, l.ID(), it.ID())
	require.NoError(t, err)
	require.Len(t, got.Items(), 1)
	assert.True(t, got.Items()[0].IsPacked())

	got, err = svc.RenameItem(ctx, owner, l.ID(), it.ID(), "Wool socks")
	require.NoError(t, err)
	assert.Equal(t, "Wool socks", got.Items()[0].Name())

	got, err = svc.UnpackItem(ctx, owner, l.ID(), it.ID())
	require.NoError(t, err)
	assert.False(t, got.Items()[0].IsPacked())

	got, err = svc.RemoveItem(ctx, owner, l.ID(), it.ID())
	require.NoError(t, err)
	assert.Empty(t, got.Items())

	// Against someone else's list everything is not found.
	_, err = svc.AddItem(ctx, uuid.New(), l.ID(), "Hat")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListServiceAddItemValidation(t *testing.T) {
	ctx := context.Background()
	svc, store := newListService(t)
	owner := uuid.New()

	l, err := svc.Create(ctx, owner, "Trip")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, owner, l.ID(), " ")
	assert.ErrorIs(t, err, dom.ErrInvalidArgument)

	// The failed use case left nothing behind.
	got, ok, err := store.PackingLists().GetByID(ctx, l.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got.Items())
}

func TestListServiceRenameAcceptsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newListService(t)
	owner := uuid.New()

	l, err := svc.Create(ctx, owner, "Trip")
	require.NoError(t, err)

	got, err := svc.Rename(ctx, owner, l.ID(), "")
	require.NoError(t, err)
	assert.Equal(t, "", got.Name())
}

func TestListServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newListService(t)
	owner := uuid.New()

	l, err := svc.Create(ctx, owner, "Trip")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, l.ID()))
	_, err = svc.Get(ctx, owner, l.ID())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, owner, l.ID()), ErrNotFound)
}

func TestListServiceCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryStore()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	c := cache.NewListCache(rdb, time.Minute)
	svc := NewListService(uow.NewMemory(store), store.PackingLists(), c)
	owner := uuid.New()

	l, err := svc.Create(ctx, owner, "Trip")
	require.NoError(t, err)

	// Fill the cache.
	lists, err := svc.Lists(ctx, owner)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	cached, err := c.GetLists(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, cached)

	// A write invalidates, and the next read sees the new state.
	_, err = svc.AddItem(ctx, owner, l.ID(), "Socks")
	require.NoError(t, err)
	cached, err = c.GetLists(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, cached)

	lists, err = svc.Lists(ctx, owner)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Len(t, lists[0].Items(), 1)
}

package repo

import (
	"context"
	"testing"

	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	users := store.Users()

	u, err := dom.NewUser("user@example.com")
	require.NoError(t, err)
	require.NoError(t, users.Add(ctx, u))

	got, ok, err := users.GetByID(ctx, u.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, dom.SameIdentity(u, got))
	assert.Equal(t, "user@example.com", got.Email().Value())

	got, ok, err = users.GetByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u.ID(), got.ID())

	_, ok, err = users.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryUserUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	users := store.Users()

	u, err := dom.NewUser("old@example.com")
	require.NoError(t, err)
	require.NoError(t, users.Add(ctx, u))

	require.NoError(t, u.ChangeEmail("new@example.com"))
	require.NoError(t, users.Update(ctx, u))

	got, ok, err := users.GetByID(ctx, u.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new@example.com", got.Email().Value())

	// Update on a missing ID is a silent no-op.
	ghost, err := dom.NewUser("ghost@example.com")
	require.NoError(t, err)
	require.NoError(t, users.Update(ctx, ghost))
	_, ok, err = users.GetByID(ctx, ghost.ID())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, users.Delete(ctx, u.ID()))
	_, ok, err = users.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.False(t, ok)

	// Delete on a missing ID is a silent no-op too.
	require.NoError(t, users.Delete(ctx, u.ID()))
}

func TestMemoryPackingListRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	lists := store.PackingLists()

	owner := uuid.New()
	l, err := dom.NewPackingList("Trip", owner)
	require.NoError(t, err)
	i1, err := l.AddItem("Socks")
	require.NoError(t, err)
	i2, err := l.AddItem("Hat")
	require.NoError(t, err)
	l.MarkItemPacked(i1.ID())

	require.NoError(t, lists.Add(ctx, l))

	got, ok, err := lists.GetByID(ctx, l.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Trip", got.Name())
	assert.Equal(t, owner, got.OwnerID())

	byID := make(map[uuid.UUID]dom.Item)
	for _, it := range got.Items() {
		byID[it.ID()] = it
	}
	require.Len(t, byID, 2)
	assert.Equal(t, "Socks", byID[i1.ID()].Name())
	assert.True(t, byID[i1.ID()].IsPacked())
	assert.Equal(t, "Hat", byID[i2.ID()].Name())
	assert.False(t, byID[i2.ID()].IsPacked())
}

// The key reconciliation scenario: rename the list, rename an existing
// item, add a new one. The existing item's row must survive as the same
// row, not a delete plus reinsert.
func TestMemoryUpdateReconciles(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	lists := store.PackingLists()

	l, err := dom.NewPackingList("Old", uuid.New())
	require.NoError(t, err)
	a, err := l.AddItem("Old Item")
	require.NoError(t, err)
	require.NoError(t, lists.Add(ctx, l))

	seqBefore, ok := store.ItemRowSeq(l.ID(), a.ID())
	require.True(t, ok)

	l.ChangeName("New")
	require.NoError(t, l.ChangeItemName(a.ID(), "New Item"))
	b, err := l.AddItem("Second Item")
	require.NoError(t, err)

	require.NoError(t, lists.Update(ctx, l))

	got, ok, err := lists.GetByID(ctx, l.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "New", got.Name())
	require.Len(t, got.Items(), 2)

	byID := make(map[uuid.UUID]dom.Item)
	for _, it := range got.Items() {
		byID[it.ID()] = it
	}
	assert.Equal(t, "New Item", byID[a.ID()].Name())
	assert.Equal(t, "Second Item", byID[b.ID()].Name())

	seqAfter, ok := store.ItemRowSeq(l.ID(), a.ID())
	require.True(t, ok)
	assert.Equal(t, seqBefore, seqAfter, "item A must keep its storage row")
}

func TestMemoryUpdateDeletesRemovedItems(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	lists := store.PackingLists()

	l, err := dom.NewPackingList("Beach", uuid.New())
	require.NoError(t, err)
	a, err := l.AddItem("Sunglasses")
	require.NoError(t, err)
	require.NoError(t, lists.Add(ctx, l))

	require.NoError(t, l.ChangeItemName(a.ID(), "Updated Sunglasses"))
	l.RemoveItem(a.ID())
	_, err = l.AddItem("Shoes")
	require.NoError(t, err)
	_, err = l.AddItem("Hat")
	require.NoError(t, err)

	require.NoError(t, lists.Update(ctx, l))

	got, ok, err := lists.GetByID(ctx, l.ID())
	require.NoError(t, err)
	require.True(t, ok)

	names := make(map[string]bool)
	for _, it := range got.Items() {
		names[it.Name()] = true
		assert.NotEqual(t, a.ID(), it.ID())
	}
	assert.Equal(t, map[string]bool{"Shoes": true, "Hat": true}, names)

	_, ok = store.ItemRowSeq(l.ID(), a.ID())
	assert.False(t, ok, "item A's row must be gone")
}

func TestMemoryUpdateAbsentListIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	lists := store.PackingLists()

	l, err := dom.NewPackingList("Never Added", uuid.New())
	require.NoError(t, err)
	_, err = l.AddItem("Socks")
	require.NoError(t, err)

	writesBefore := store.Writes()
	require.NoError(t, lists.Update(ctx, l))
	assert.Equal(t, writesBefore, store.Writes())

	_, ok, err := lists.GetByID(ctx, l.ID())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCloneIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	u, err := dom.NewUser("user@example.com")
	require.NoError(t, err)

	clone := store.Clone()
	require.NoError(t, clone.Users().Add(ctx, u))

	_, ok, err := store.Users().GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.False(t, ok, "writes on a clone must not leak into the source")

	store.Adopt(clone)
	_, ok, err = store.Users().GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.True(t, ok)
}

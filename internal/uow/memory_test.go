package uow

import (
	"context"
	"errors"
	"testing"

	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/repo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCommitAppliesStagedWrites(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryStore()
	starter := NewMemory(store)

	u, err := dom.NewUser("user@example.com")
	require.NoError(t, err)
	l, err := dom.NewPackingList("Trip", u.ID())
	require.NoError(t, err)

	unit, err := starter.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, unit.Users().Add(ctx, u))
	require.NoError(t, unit.PackingLists().Add(ctx, l))

	// Nothing is visible before Commit.
	_, ok, err := store.Users().GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := unit.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, ok, err = store.Users().GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = store.PackingLists().GetByID(ctx, l.ID())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryRollbackDiscards(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryStore()
	starter := NewMemory(store)

	u, err := dom.NewUser("user@example.com")
	require.NoError(t, err)

	unit, err := starter.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, unit.Users().Add(ctx, u))
	require.NoError(t, unit.Rollback(ctx))

	_, ok, err := store.Users().GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.False(t, ok)
}

// Atomicity across two stores: when Commit fails, neither the user row nor
// the credential row is durably applied.
func TestMemoryFailedCommitLeavesNothingBehind(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryStore()
	starter := NewMemory(store)
	starter.FailCommitsWith(errors.New("constraint violation"))

	u, err := dom.NewUser("user@example.com")
	require.NoError(t, err)

	unit, err := starter.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, unit.Users().Add(ctx, u))
	require.NoError(t, unit.Credentials().Add(ctx, repo.Credential{
		ID:           uuid.New(),
		Username:     "traveler",
		PasswordHash: "x",
		UserID:       u.ID(),
	}))

	_, err = unit.Commit(ctx)
	assert.ErrorIs(t, err, ErrPersistence)

	_, ok, err := store.Users().GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.False(t, ok, "failed commit must not leave the user behind")
	_, ok, err = store.Credentials().GetByUsername(ctx, "traveler")
	require.NoError(t, err)
	assert.False(t, ok, "failed commit must not leave the credential behind")
}

func TestMemoryConcurrentLastWriterWins(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryStore()
	starter := NewMemory(store)

	l, err := dom.NewPackingList("Original", uuid.New())
	require.NoError(t, err)
	seed, err := starter.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, seed.PackingLists().Add(ctx, l))
	_, err = seed.Commit(ctx)
	require.NoError(t, err)

	// Two units of work mutate the same aggregate; no conflict detection
	// exists, so the later Commit simply overwrites.
	first, err := starter.Begin(ctx)
	require.NoError(t, err)
	second, err := starter.Begin(ctx)
	require.NoError(t, err)

	a, _, err := first.PackingLists().GetByID(ctx, l.ID())
	require.NoError(t, err)
	a.ChangeName("First")
	require.NoError(t, first.PackingLists().Update(ctx, a))

	b, _, err := second.PackingLists().GetByID(ctx, l.ID())
	require.NoError(t, err)
	b.ChangeName("Second")
	require.NoError(t, second.PackingLists().Update(ctx, b))

	_, err = first.Commit(ctx)
	require.NoError(t, err)
	_, err = second.Commit(ctx)
	require.NoError(t, err)

	got, ok, err := store.PackingLists().GetByID(ctx, l.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Second", got.Name())
}

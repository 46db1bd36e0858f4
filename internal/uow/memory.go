package uow

import (
	"context"
	"fmt"

	"github.com/CleanArchitectureTutorials/PackAndGo/internal/repo"
)

// Memory starts in-memory units of work over a shared MemoryStore. Each
// unit stages writes against a deep clone of the store; Commit swaps the
// clone in, Rollback just drops it. Used by tests and local runs without
// Postgres.
type Memory struct {
	store     *repo.MemoryStore
	commitErr error
}

// NewMemory returns a Memory starter over the store.
func NewMemory(store *repo.MemoryStore) *Memory {
	return &Memory{store: store}
}

// FailCommitsWith makes every subsequent Commit fail with err, simulating
// a store that rejects the write. Pass nil to restore normal commits.
func (m *Memory) FailCommitsWith(err error) { m.commitErr = err }

func (m *Memory) Begin(_ context.Context) (UnitOfWork, error) {
	clone := m.store.Clone()
	return &memoryUnitOfWork{
		parent: m,
		clone:  clone,
		base:   clone.Writes(),
	}, nil
}

type memoryUnitOfWork struct {
	parent *Memory
	clone  *repo.MemoryStore
	base   int64
	done   bool
}

func (u *memoryUnitOfWork) Users() repo.UserRepo               { return u.clone.Users() }
func (u *memoryUnitOfWork) PackingLists() repo.PackingListRepo { return u.clone.PackingLists() }
func (u *memoryUnitOfWork) Credentials() repo.CredentialRepo   { return u.clone.Credentials() }

func (u *memoryUnitOfWork) Commit(_ context.Context) (int64, error) {
	if u.done {
		return 0, fmt.Errorf("%w: unit of work already finished", ErrPersistence)
	}
	u.done = true
	if err := u.parent.commitErr; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	u.parent.store.Adopt(u.clone)
	return u.clone.Writes() - u.base, nil
}

func (u *memoryUnitOfWork) Rollback(_ context.Context) error {
	u.done = true
	return nil
}

// Package uow provides the unit of work: a per-use-case boundary that
// stages repository writes against one session and applies them with a
// single Commit, or discards them with Rollback.
package uow

import (
	"context"
	"errors"

	"github.com/CleanArchitectureTutorials/PackAndGo/internal/repo"
)

// ErrPersistence marks a commit rejected by the backing store. No staged
// change from the use case is durably applied when Commit fails.
var ErrPersistence = errors.New("persistence failure")

// UnitOfWork exposes repositories bound to one session. None of the
// repository calls commits on its own; exactly one Commit per use case
// finalizes all staged changes together.
type UnitOfWork interface {
	Users() repo.UserRepo
	PackingLists() repo.PackingListRepo
	Credentials() repo.CredentialRepo

	// Commit applies all staged changes and returns the number of
	// affected rows.
	Commit(ctx context.Context) (int64, error)
	// Rollback discards staged changes. Safe to call after Commit;
	// it is a no-op then.
	Rollback(ctx context.Context) error
}

// Starter opens a fresh unit of work per use case. The session it owns is
// exclusive to the running operation and discarded afterward.
type Starter interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// Package repo defines the storage contracts for the domain aggregates and
// their Postgres and in-memory implementations.
package repo

import (
	"context"
	"time"

	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the slice of pgx behavior the repositories need. Both *pgxpool.Pool
// and pgx.Tx satisfy it, so the same repository code runs against the pool
// for reads and inside a unit-of-work transaction for writes.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepo provides persistence for the User aggregate.
//
// GetByID and GetByEmail report absence with ok == false and a nil error;
// an error means the lookup itself failed. Update and Delete on a missing
// ID are silent no-ops. Add with an ID that already exists is undefined by
// contract: callers must only Add new aggregates.
type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*dom.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*dom.User, bool, error)
	Add(ctx context.Context, u *dom.User) error
	Update(ctx context.Context, u *dom.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PackingListRepo provides persistence for the PackingList aggregate and
// its owned items. Same absence and no-op semantics as UserRepo. Update
// reconciles the persisted item rows against the in-memory aggregate:
// rows kept on both sides are updated in place, never deleted and
// reinserted.
type PackingListRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*dom.PackingList, bool, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dom.PackingList, error)
	Add(ctx context.Context, l *dom.PackingList) error
	Update(ctx context.Context, l *dom.PackingList) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Credential is the auth-identity record created alongside a domain user
// during registration. It is a storage record, not a domain entity, and it
// carries its own ID independent of the user's.
type Credential struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	UserID       uuid.UUID
	CreatedAt    time.Time
}

// CredentialRepo persists auth credentials.
type CredentialRepo interface {
	GetByUsername(ctx context.Context, username string) (Credential, bool, error)
	Add(ctx context.Context, c Credential) error
}

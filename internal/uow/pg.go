package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/CleanArchitectureTutorials/PackAndGo/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PG starts Postgres units of work, one transaction each.
type PG struct {
	pool *pgxpool.Pool
}

// NewPG returns a PG starter over the pool.
func NewPG(pool *pgxpool.Pool) *PG {
	return &PG{pool: pool}
}

func (p *PG) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	db := &countingDB{db: tx}
	return &pgUnitOfWork{
		tx:    tx,
		db:    db,
		users: repo.NewPGUserRepo(db),
		lists: repo.NewPGPackingListRepo(db),
		creds: repo.NewPGCredentialRepo(db),
	}, nil
}

type pgUnitOfWork struct {
	tx    pgx.Tx
	db    *countingDB
	users *repo.PGUserRepo
	lists *repo.PGPackingListRepo
	creds *repo.PGCredentialRepo
}

func (u *pgUnitOfWork) Users() repo.UserRepo               { return u.users }
func (u *pgUnitOfWork) PackingLists() repo.PackingListRepo { return u.lists }
func (u *pgUnitOfWork) Credentials() repo.CredentialRepo   { return u.creds }

func (u *pgUnitOfWork) Commit(ctx context.Context) (int64, error) {
	if err := u.tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return u.db.rows, nil
}

func (u *pgUnitOfWork) Rollback(ctx context.Context) error {
	err := u.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// countingDB forwards to the transaction and sums affected rows, so
// Commit can report how much work the use case staged.
type countingDB struct {
	db   repo.DB
	rows int64
}

func (c *countingDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tag, err := c.db.Exec(ctx, sql, args...)
	if err == nil {
		c.rows += tag.RowsAffected()
	}
	return tag, err
}

func (c *countingDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.db.Query(ctx, sql, args...)
}

func (c *countingDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.db.QueryRow(ctx, sql, args...)
}

package repo

import (
	"context"
	"errors"

	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db DB
}

// NewPGUserRepo returns a new PGUserRepo bound to db, which is either the
// pool or a unit-of-work transaction.
func NewPGUserRepo(db DB) *PGUserRepo {
	return &PGUserRepo{db: db}
}

func (r *PGUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*dom.User, bool, error) {
	return r.getOne(ctx, `SELECT id, email FROM users WHERE id = $1`, id)
}

func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (*dom.User, bool, error) {
	return r.getOne(ctx, `SELECT id, email FROM users WHERE email = $1`, email)
}

func (r *PGUserRepo) getOne(ctx context.Context, query string, arg any) (*dom.User, bool, error) {
	var (
		id    uuid.UUID
		email string
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(&id, &email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	u, err := dom.LoadUser(id, email)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (r *PGUserRepo) Add(ctx context.Context, u *dom.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email) VALUES ($1, $2)`,
		u.ID(), u.Email().Value(),
	)
	return err
}

func (r *PGUserRepo) Update(ctx context.Context, u *dom.User) error {
	// Zero rows affected means the user does not exist; that is a no-op.
	_, err := r.db.Exec(ctx,
		`UPDATE users SET email = $2 WHERE id = $1`,
		u.ID(), u.Email().Value(),
	)
	return err
}

func (r *PGUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

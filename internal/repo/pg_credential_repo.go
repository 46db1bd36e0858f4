package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// PGCredentialRepo implements CredentialRepo with Postgres.
type PGCredentialRepo struct {
	db DB
}

// NewPGCredentialRepo returns a new PGCredentialRepo bound to db.
func NewPGCredentialRepo(db DB) *PGCredentialRepo {
	return &PGCredentialRepo{db: db}
}

func (r *PGCredentialRepo) GetByUsername(ctx context.Context, username string) (Credential, bool, error) {
	var c Credential
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, user_id, created_at FROM auth_users WHERE username = $1`,
		username,
	).Scan(&c.ID, &c.Username, &c.PasswordHash, &c.UserID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credential{}, false, nil
	}
	if err != nil {
		return Credential{}, false, err
	}
	return c, true, nil
}

func (r *PGCredentialRepo) Add(ctx context.Context, c Credential) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO auth_users (id, username, password_hash, user_id) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Username, c.PasswordHash, c.UserID,
	)
	return err
}

package service

import (
	"context"
	"errors"
	"testing"

	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/repo"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/uow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *uow.Memory, *repo.MemoryStore) {
	t.Helper()
	store := repo.NewMemoryStore()
	starter := uow.NewMemory(store)
	return NewUserService(starter, store.Users(), store.Credentials()), starter, store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newUserService(t)

	u, err := svc.Register(ctx, "traveler", "secret", "traveler@example.com")
	require.NoError(t, err)
	assert.Equal(t, "traveler@example.com", u.Email().Value())

	// Both records exist: the business profile and the credential,
	// each with its own ID.
	got, ok, err := store.Users().GetByID(ctx, u.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, dom.SameIdentity(u, got))

	cred, ok, err := store.Credentials().GetByUsername(ctx, "traveler")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u.ID(), cred.UserID)
	assert.NotEqual(t, u.ID(), cred.ID)
	assert.NotEqual(t, "secret", cred.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService(t)

	tests := []struct {
		name     string
		username string
		password string
		email    string
		wantErr  error
	}{
		{name: "blank username", username: "  ", password: "secret", email: "a@b.c", wantErr: ErrInvalidCredentials},
		{name: "blank password", username: "traveler", password: "", email: "a@b.c", wantErr: ErrInvalidCredentials},
		{name: "empty email", username: "traveler", password: "secret", email: "", wantErr: dom.ErrEmptyEmail},
		{name: "bad email", username: "traveler", password: "secret", email: "nope", wantErr: dom.ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password, tt.email)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// Registration spans two stores; a rejected commit must leave neither
// record behind.
func TestRegisterAtomicity(t *testing.T) {
	ctx := context.Background()
	svc, starter, store := newUserService(t)
	starter.FailCommitsWith(errors.New("constraint violation"))

	_, err := svc.Register(ctx, "traveler", "secret", "traveler@example.com")
	assert.ErrorIs(t, err, uow.ErrPersistence)

	_, ok, err := store.Users().GetByEmail(ctx, "traveler@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.Credentials().GetByUsername(ctx, "traveler")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService(t)

	u, err := svc.Register(ctx, "traveler", "secret", "traveler@example.com")
	require.NoError(t, err)

	got, err := svc.ValidateCredentials(ctx, "traveler", "secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID(), got.ID())

	_, err = svc.ValidateCredentials(ctx, "traveler", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.ValidateCredentials(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.ValidateCredentials(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangeEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newUserService(t)

	u, err := svc.Register(ctx, "traveler", "secret", "old@example.com")
	require.NoError(t, err)

	got, err := svc.ChangeEmail(ctx, u.ID(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email().Value())

	stored, ok, err := store.Users().GetByID(ctx, u.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new@example.com", stored.Email().Value())

	_, err = svc.ChangeEmail(ctx, u.ID(), "broken")
	assert.ErrorIs(t, err, dom.ErrInvalidEmail)
	_, err = svc.ChangeEmail(ctx, uuid.New(), "a@b.c")
	assert.ErrorIs(t, err, ErrNotFound)
}

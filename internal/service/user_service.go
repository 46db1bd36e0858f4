package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/repo"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/uow"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

// UserService handles registration, credential checks and profile changes.
type UserService struct {
	uow   uow.Starter
	users repo.UserRepo
	creds repo.CredentialRepo
}

// NewUserService returns a new UserService. users and creds are the
// pool-bound repositories used for reads.
func NewUserService(starter uow.Starter, users repo.UserRepo, creds repo.CredentialRepo) *UserService {
	return &UserService{uow: starter, users: users, creds: creds}
}

// Register creates the business profile and the auth credential in one
// unit-of-work commit: either both records exist afterward or neither does.
// Email validation errors from the domain propagate unchanged.
func (s *UserService) Register(ctx context.Context, username, password, email string) (*dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := dom.NewUser(email)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	unit, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback(ctx)

	if err := unit.Users().Add(ctx, u); err != nil {
		return nil, err
	}
	err = unit.Credentials().Add(ctx, repo.Credential{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		UserID:       u.ID(),
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	if _, err := unit.Commit(ctx); err != nil {
		if utils.IsPGUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

// ValidateCredentials checks username and password; returns the domain
// user if valid.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (*dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	cred, ok, err := s.creds.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	u, ok, err := s.users.GetByID(ctx, cred.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*dom.User, error) {
	u, ok, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

// ChangeEmail replaces the user's email; validation errors propagate.
func (s *UserService) ChangeEmail(ctx context.Context, id uuid.UUID, email string) (*dom.User, error) {
	unit, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback(ctx)

	u, ok, err := unit.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	if err := u.ChangeEmail(email); err != nil {
		return nil, err
	}
	if err := unit.Users().Update(ctx, u); err != nil {
		return nil, err
	}
	if _, err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

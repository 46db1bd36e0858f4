package domain

import "github.com/google/uuid"

// User is the domain entity for an account's business profile.
// Credentials live in the auth subsystem, not here.
type User struct {
	id    uuid.UUID
	email Email
}

// NewUser creates a user with a fresh ID and a validated email.
func NewUser(rawEmail string) (*User, error) {
	email, err := NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	return &User{id: uuid.New(), email: email}, nil
}

// LoadUser reconstitutes a user from storage. The raw email is re-validated,
// so a corrupt stored value is still caught.
func LoadUser(id uuid.UUID, rawEmail string) (*User, error) {
	email, err := NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	return &User{id: id, email: email}, nil
}

func (u *User) ID() uuid.UUID       { return u.id }
func (u *User) EntityID() uuid.UUID { return u.id }
func (u *User) Email() Email        { return u.email }

// ChangeEmail replaces the email after validation. The ID never changes.
func (u *User) ChangeEmail(rawEmail string) error {
	email, err := NewEmail(rawEmail)
	if err != nil {
		return err
	}
	u.email = email
	return nil
}

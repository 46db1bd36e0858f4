package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidArgument marks an invariant violation on construction or rename.
var ErrInvalidArgument = errors.New("invalid argument")

// Item is a child entity of PackingList. It has no independent lifecycle:
// it is created, renamed and destroyed only through the owning aggregate.
type Item struct {
	id     uuid.UUID
	name   string
	packed bool
}

// NewItem creates an unpacked item with a fresh ID.
func NewItem(name string) (Item, error) {
	if strings.TrimSpace(name) == "" {
		return Item{}, fmt.Errorf("item name is empty: %w", ErrInvalidArgument)
	}
	return Item{id: uuid.New(), name: name}, nil
}

// LoadItem reconstitutes an item from storage with an explicit ID and flag.
func LoadItem(id uuid.UUID, name string, packed bool) (Item, error) {
	it, err := NewItem(name)
	if err != nil {
		return Item{}, err
	}
	it.id = id
	it.packed = packed
	return it, nil
}

func (i Item) ID() uuid.UUID       { return i.id }
func (i Item) EntityID() uuid.UUID { return i.id }
func (i Item) Name() string        { return i.name }
func (i Item) IsPacked() bool      { return i.packed }

// ChangeName renames the item; the new name must be non-blank.
func (i *Item) ChangeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("item name is empty: %w", ErrInvalidArgument)
	}
	i.name = name
	return nil
}

// MarkPacked sets the flag. Idempotent.
func (i *Item) MarkPacked() { i.packed = true }

// MarkUnpacked clears the flag. Idempotent.
func (i *Item) MarkUnpacked() { i.packed = false }

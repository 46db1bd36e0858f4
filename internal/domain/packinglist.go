package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PackingList is the aggregate root owning a set of Items. All structural
// changes to items go through its methods; nothing outside the aggregate
// mutates an item in isolation.
type PackingList struct {
	id      uuid.UUID
	name    string
	ownerID uuid.UUID
	items   []Item
}

// NewPackingList creates an empty list for the given owner.
func NewPackingList(name string, ownerID uuid.UUID) (*PackingList, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("list name is empty: %w", ErrInvalidArgument)
	}
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("owner id is empty: %w", ErrInvalidArgument)
	}
	return &PackingList{id: uuid.New(), name: name, ownerID: ownerID}, nil
}

// LoadPackingList reconstitutes a list from storage. The caller is trusted:
// name, owner and items are not re-validated. The item slice is copied.
func LoadPackingList(id uuid.UUID, name string, ownerID uuid.UUID, items []Item) *PackingList {
	l := &PackingList{id: id, name: name, ownerID: ownerID}
	l.items = append(l.items, items...)
	return l
}

func (l *PackingList) ID() uuid.UUID       { return l.id }
func (l *PackingList) EntityID() uuid.UUID { return l.id }
func (l *PackingList) Name() string        { return l.name }
func (l *PackingList) OwnerID() uuid.UUID  { return l.ownerID }

// Items returns a copy of the item collection. Order carries no meaning.
func (l *PackingList) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// ChangeName replaces the list name. Unlike NewPackingList it accepts any
// string, empty included.
func (l *PackingList) ChangeName(name string) {
	l.name = name
}

// AddItem creates a new item in the list and returns it.
func (l *PackingList) AddItem(name string) (Item, error) {
	it, err := NewItem(name)
	if err != nil {
		return Item{}, err
	}
	l.items = append(l.items, it)
	return it, nil
}

// RemoveItem deletes the item with the given ID. No-op if absent.
func (l *PackingList) RemoveItem(itemID uuid.UUID) {
	for i := range l.items {
		if l.items[i].id == itemID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// ChangeItemName renames the item with the given ID. No-op if absent;
// a blank name fails only when the item exists.
func (l *PackingList) ChangeItemName(itemID uuid.UUID, name string) error {
	for i := range l.items {
		if l.items[i].id == itemID {
			return l.items[i].ChangeName(name)
		}
	}
	return nil
}

// MarkItemPacked sets the packed flag on the item. No-op if absent.
func (l *PackingList) MarkItemPacked(itemID uuid.UUID) {
	for i := range l.items {
		if l.items[i].id == itemID {
			l.items[i].MarkPacked()
			return
		}
	}
}

// MarkItemUnpacked clears the packed flag on the item. No-op if absent.
func (l *PackingList) MarkItemUnpacked(itemID uuid.UUID) {
	for i := range l.items {
		if l.items[i].id == itemID {
			l.items[i].MarkUnpacked()
			return
		}
	}
}

package service

import (
	"context"
	"errors"

	"github.com/CleanArchitectureTutorials/PackAndGo/internal/cache"
	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/repo"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/uow"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound covers both a missing aggregate and one owned by somebody else.
var ErrNotFound = errors.New("not found")

// ListService implements the packing list use cases. Reads go through the
// pool-bound repository; every write runs in its own unit of work so the
// scalar update and the item reconciliation commit together.
type ListService struct {
	uow    uow.Starter
	reader repo.PackingListRepo
	cache  *cache.ListCache
	sf     singleflight.Group
}

// NewListService creates a ListService. If c is nil, caching is disabled.
func NewListService(starter uow.Starter, reader repo.PackingListRepo, c *cache.ListCache) *ListService {
	return &ListService{uow: starter, reader: reader, cache: c}
}

// Create makes a new empty list for the owner.
func (s *ListService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*dom.PackingList, error) {
	l, err := dom.NewPackingList(name, ownerID)
	if err != nil {
		return nil, err
	}

	unit, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback(ctx)

	if err := unit.PackingLists().Add(ctx, l); err != nil {
		return nil, err
	}
	if _, err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return l, nil
}

// Lists returns all lists for the owner, served from cache when possible.
func (s *ListService) Lists(ctx context.Context, ownerID uuid.UUID) ([]*dom.PackingList, error) {
	if s.cache == nil {
		return s.reader.ListByOwner(ctx, ownerID)
	}
	v, err, _ := s.sf.Do("lists:"+ownerID.String(), func() (interface{}, error) {
		if lists, err := s.cache.GetLists(ctx, ownerID); err == nil && lists != nil {
			return lists, nil
		}
		lists, err := s.reader.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetLists(ctx, ownerID, lists)
		return lists, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*dom.PackingList), nil
}

// Get returns one list; ErrNotFound if it does not exist or belongs to
// another owner.
func (s *ListService) Get(ctx context.Context, ownerID, listID uuid.UUID) (*dom.PackingList, error) {
	l, ok, err := s.reader.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !ok || l.OwnerID() != ownerID {
		return nil, ErrNotFound
	}
	return l, nil
}

// Rename changes the list name. The domain accepts any name here, empty
// included.
func (s *ListService) Rename(ctx context.Context, ownerID, listID uuid.UUID, name string) (*dom.PackingList, error) {
	return s.mutate(ctx, ownerID, listID, func(l *dom.PackingList) error {
		l.ChangeName(name)
		return nil
	})
}

// Delete removes the list and, through the storage cascade, its items.
func (s *ListService) Delete(ctx context.Context, ownerID, listID uuid.UUID) error {
	unit, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer unit.Rollback(ctx)

	l, ok, err := unit.PackingLists().GetByID(ctx, listID)
	if err != nil {
		return err
	}
	if !ok || l.OwnerID() != ownerID {
		return ErrNotFound
	}
	if err := unit.PackingLists().Delete(ctx, listID); err != nil {
		return err
	}
	if _, err := unit.Commit(ctx); err != nil {
		return err
	}
	s.invalidate(ctx, ownerID)
	return nil
}

// AddItem appends a new item to the list and returns it.
func (s *ListService) AddItem(ctx context.Context, ownerID, listID uuid.UUID, name string) (dom.Item, error) {
	var added dom.Item
	_, err := s.mutate(ctx, ownerID, listID, func(l *dom.PackingList) error {
		it, err := l.AddItem(name)
		if err != nil {
			return err
		}
		added = it
		return nil
	})
	return added, err
}

// RemoveItem drops the item from the list. Unknown item IDs are no-ops.
func (s *ListService) RemoveItem(ctx context.Context, ownerID, listID, itemID uuid.UUID) (*dom.PackingList, error) {
	return s.mutate(ctx, ownerID, listID, func(l *dom.PackingList) error {
		l.RemoveItem(itemID)
		return nil
	})
}

// RenameItem renames the item. Unknown item IDs are no-ops.
func (s *ListService) RenameItem(ctx context.Context, ownerID, listID, itemID uuid.UUID, name string) (*dom.PackingList, error) {
	return s.mutate(ctx, ownerID, listID, func(l *dom.PackingList) error {
		return l.ChangeItemName(itemID, name)
	})
}

// PackItem marks the item packed. Unknown item IDs are no-ops.
func (s *ListService) PackItem(ctx context.Context, ownerID, listID, itemID uuid.UUID) (*dom.PackingList, error) {
	return s.mutate(ctx, ownerID, listID, func(l *dom.PackingList) error {
		l.MarkItemPacked(itemID)
		return nil
	})
}

// UnpackItem clears the packed flag. Unknown item IDs are no-ops.
func (s *ListService) UnpackItem(ctx context.Context, ownerID, listID, itemID uuid.UUID) (*dom.PackingList, error) {
	return s.mutate(ctx, ownerID, listID, func(l *dom.PackingList) error {
		l.MarkItemUnpacked(itemID)
		return nil
	})
}

// mutate is the shared write path: load the aggregate inside the unit of
// work, apply the change, reconcile via Update, commit, invalidate.
func (s *ListService) mutate(ctx context.Context, ownerID, listID uuid.UUID, fn func(*dom.PackingList) error) (*dom.PackingList, error) {
	unit, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback(ctx)

	l, ok, err := unit.PackingLists().GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !ok || l.OwnerID() != ownerID {
		return nil, ErrNotFound
	}
	if err := fn(l); err != nil {
		return nil, err
	}
	if err := unit.PackingLists().Update(ctx, l); err != nil {
		return nil, err
	}
	if _, err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return l, nil
}

func (s *ListService) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.InvalidateOwner(ctx, ownerID)
	}
}

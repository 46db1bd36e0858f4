package repo

import (
	"context"
	"sync"

	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of all repository contracts,
// sharing one state the way the Postgres repos share one database. It backs
// the memory unit of work and the test suites.
//
// Item rows carry a monotonically increasing sequence number assigned at
// insert, standing in for a storage-level surrogate key: an update keeps
// the sequence, a delete plus reinsert does not.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]string // id -> email
	creds  map[string]Credential
	lists  map[uuid.UUID]*memList
	seq    int64
	writes int64
}

type memList struct {
	id      uuid.UUID
	name    string
	ownerID uuid.UUID
	items   map[uuid.UUID]*memItem
}

type memItem struct {
	row ItemRow
	seq int64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[uuid.UUID]string),
		creds: make(map[string]Credential),
		lists: make(map[uuid.UUID]*memList),
	}
}

// Clone deep-copies the store. The memory unit of work stages writes
// against a clone and swaps it back in on Commit.
func (s *MemoryStore) Clone() *MemoryStore {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := NewMemoryStore()
	c.seq = s.seq
	c.writes = s.writes
	for id, email := range s.users {
		c.users[id] = email
	}
	for name, cred := range s.creds {
		c.creds[name] = cred
	}
	for id, l := range s.lists {
		cl := &memList{id: l.id, name: l.name, ownerID: l.ownerID, items: make(map[uuid.UUID]*memItem, len(l.items))}
		for itemID, it := range l.items {
			copied := *it
			cl.items[itemID] = &copied
		}
		c.lists[id] = cl
	}
	return c
}

// Adopt replaces this store's state with the other store's state.
func (s *MemoryStore) Adopt(other *MemoryStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	s.users = other.users
	s.creds = other.creds
	s.lists = other.lists
	s.seq = other.seq
	s.writes = other.writes
}

// Writes returns the number of row mutations applied so far.
func (s *MemoryStore) Writes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// ItemRowSeq exposes the surrogate sequence of an item row, letting tests
// assert that reconciliation updated a row in place rather than replacing it.
func (s *MemoryStore) ItemRowSeq(listID, itemID uuid.UUID) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lists[listID]
	if !ok {
		return 0, false
	}
	it, ok := l.items[itemID]
	if !ok {
		return 0, false
	}
	return it.seq, true
}

// Users returns the UserRepo view of the store.
func (s *MemoryStore) Users() UserRepo { return (*memUserRepo)(s) }

// PackingLists returns the PackingListRepo view of the store.
func (s *MemoryStore) PackingLists() PackingListRepo { return (*memPackingListRepo)(s) }

// Credentials returns the CredentialRepo view of the store.
func (s *MemoryStore) Credentials() CredentialRepo { return (*memCredentialRepo)(s) }

type memUserRepo MemoryStore

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*dom.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email, ok := r.users[id]
	if !ok {
		return nil, false, nil
	}
	u, err := dom.LoadUser(id, email)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*dom.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, stored := range r.users {
		if stored == email {
			u, err := dom.LoadUser(id, stored)
			if err != nil {
				return nil, false, err
			}
			return u, true, nil
		}
	}
	return nil, false, nil
}

func (r *memUserRepo) Add(_ context.Context, u *dom.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u.Email().Value()
	r.writes++
	return nil
}

func (r *memUserRepo) Update(_ context.Context, u *dom.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return nil
	}
	r.users[u.ID()] = u.Email().Value()
	r.writes++
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return nil
	}
	delete(r.users, id)
	r.writes++
	return nil
}

type memPackingListRepo MemoryStore

func (r *memPackingListRepo) GetByID(_ context.Context, id uuid.UUID) (*dom.PackingList, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.lists[id]
	if !ok {
		return nil, false, nil
	}
	agg, err := l.toDomain()
	if err != nil {
		return nil, false, err
	}
	return agg, true, nil
}

func (r *memPackingListRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*dom.PackingList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*dom.PackingList
	for _, l := range r.lists {
		if l.ownerID != ownerID {
			continue
		}
		agg, err := l.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, nil
}

func (r *memPackingListRepo) Add(_ context.Context, agg *dom.PackingList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := &memList{id: agg.ID(), name: agg.Name(), ownerID: agg.OwnerID(), items: make(map[uuid.UUID]*memItem)}
	for _, it := range agg.Items() {
		r.seq++
		l.items[it.ID()] = &memItem{row: ItemRow{ID: it.ID(), Name: it.Name(), Packed: it.IsPacked()}, seq: r.seq}
		r.writes++
	}
	r.lists[agg.ID()] = l
	r.writes++
	return nil
}

// Update applies the same reconciliation the Postgres repo does: rows
// matched by ID are rewritten in place and keep their sequence number.
func (r *memPackingListRepo) Update(_ context.Context, agg *dom.PackingList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lists[agg.ID()]
	if !ok {
		// Never an implicit insert.
		return nil
	}
	l.name = agg.Name()
	l.ownerID = agg.OwnerID()
	r.writes++

	persisted := make([]ItemRow, 0, len(l.items))
	for _, it := range l.items {
		persisted = append(persisted, it.row)
	}
	plan := PlanItems(persisted, agg.Items())

	for _, id := range plan.Deletes {
		delete(l.items, id)
		r.writes++
	}
	for _, row := range plan.Updates {
		l.items[row.ID].row = row
		r.writes++
	}
	for _, row := range plan.Inserts {
		r.seq++
		l.items[row.ID] = &memItem{row: row, seq: r.seq}
		r.writes++
	}
	return nil
}

func (r *memPackingListRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lists[id]; !ok {
		return nil
	}
	delete(r.lists, id)
	r.writes++
	return nil
}

func (l *memList) toDomain() (*dom.PackingList, error) {
	items := make([]dom.Item, 0, len(l.items))
	for _, it := range l.items {
		item, err := dom.LoadItem(it.row.ID, it.row.Name, it.row.Packed)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return dom.LoadPackingList(l.id, l.name, l.ownerID, items), nil
}

type memCredentialRepo MemoryStore

func (r *memCredentialRepo) GetByUsername(_ context.Context, username string) (Credential, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.creds[username]
	return c, ok, nil
}

func (r *memCredentialRepo) Add(_ context.Context, c Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creds[c.Username] = c
	r.writes++
	return nil
}

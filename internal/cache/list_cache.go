// Package cache caches packing list views in Redis, keyed per owner, with
// invalidate-on-write.
package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyLists = "packlist:lists:"

// ListCache caches an owner's packing lists.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewListCache returns a new ListCache.
func NewListCache(rdb *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{rdb: rdb, ttl: ttl}
}

// cachedList and cachedItem are plain data carriers for the wire format;
// the domain types never marshal themselves.
type cachedList struct {
	ID      uuid.UUID    `json:"id"`
	Name    string       `json:"name"`
	OwnerID uuid.UUID    `json:"owner_id"`
	Items   []cachedItem `json:"items"`
}

type cachedItem struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Packed bool      `json:"is_packed"`
}

func fromDomain(lists []*dom.PackingList) []cachedList {
	out := make([]cachedList, 0, len(lists))
	for _, l := range lists {
		cl := cachedList{ID: l.ID(), Name: l.Name(), OwnerID: l.OwnerID()}
		for _, it := range l.Items() {
			cl.Items = append(cl.Items, cachedItem{ID: it.ID(), Name: it.Name(), Packed: it.IsPacked()})
		}
		out = append(out, cl)
	}
	return out
}

func toDomain(cached []cachedList) ([]*dom.PackingList, error) {
	out := make([]*dom.PackingList, 0, len(cached))
	for _, cl := range cached {
		items := make([]dom.Item, 0, len(cl.Items))
		for _, ci := range cl.Items {
			it, err := dom.LoadItem(ci.ID, ci.Name, ci.Packed)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
		out = append(out, dom.LoadPackingList(cl.ID, cl.Name, cl.OwnerID, items))
	}
	return out, nil
}

// GetLists returns the cached lists for an owner, or nil on miss.
func (c *ListCache) GetLists(ctx context.Context, ownerID uuid.UUID) ([]*dom.PackingList, error) {
	b, err := c.rdb.Get(ctx, keyLists+ownerID.String()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cached []cachedList
	if err := json.Unmarshal(b, &cached); err != nil {
		return nil, err
	}
	return toDomain(cached)
}

// SetLists stores the owner's lists.
func (c *ListCache) SetLists(ctx context.Context, ownerID uuid.UUID, lists []*dom.PackingList) error {
	b, err := json.Marshal(fromDomain(lists))
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyLists+ownerID.String(), b, c.ttl).Err()
}

// InvalidateOwner drops the owner's cached view (cache invalidation on write).
func (c *ListCache) InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error {
	return c.rdb.Del(ctx, keyLists+ownerID.String()).Err()
}

// Package auth provides Redis-backed cookie sessions and the Gin
// middleware guarding the API.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "session:"
	defaultSessionTTL = 24 * time.Hour
)

// Store manages sessions in Redis. The session value is the user's ID.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a new session store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Create stores a new session for the user and returns its ID.
func (s *Store) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, userID.String(), s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// GetUserID resolves a session to its user. ok is false for a missing or
// expired session.
func (s *Store) GetUserID(ctx context.Context, sessionID string) (uuid.UUID, bool) {
	v, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// Delete removes a session by ID.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}

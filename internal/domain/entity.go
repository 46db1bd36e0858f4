// Package domain holds the business model: entities, value objects and the
// packing list aggregate. It does not depend on Gin, Postgres or Redis.
package domain

import (
	"reflect"

	"github.com/google/uuid"
)

// Entity is any type with identity-based equality: two entities are the
// same iff they have the same concrete type and the same ID, regardless
// of any other field.
type Entity interface {
	EntityID() uuid.UUID
}

// SameIdentity reports whether a and b are the same entity.
func SameIdentity(a, b Entity) bool {
	if a == nil || b == nil {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return a.EntityID() == b.EntityID()
}

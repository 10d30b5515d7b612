// Package store provides the account-scoped container backing the emulator.
//
// A Collection holds all entities of one kind, partitioned by account id and
// then by entity id. All reads and writes are implicitly scoped by account:
// nothing stored under one account is ever visible through another, which is
// the emulator's tenancy boundary. State lives only for the process
// lifetime; there is no persistence of any form.
package store

import (
	"sync"

	"github.com/xraph/paymock/types"
)

// Collection is a generic keyed container for entities of a single kind.
// Entities are keyed by their own id and returned in insertion order, which
// is the default list order. Put performs no uniqueness check; callers
// pre-check with Contains when collisions must be rejected.
type Collection[T types.Object] struct {
	mu       sync.RWMutex
	accounts map[string]*shard[T]
}

type shard[T types.Object] struct {
	byID  map[string]T
	order []string
}

// NewCollection creates an empty collection.
func NewCollection[T types.Object]() *Collection[T] {
	return &Collection[T]{accounts: make(map[string]*shard[T])}
}

// Put inserts or overwrites the entity keyed by its own id under the given
// account. Overwrites keep the entity's original insertion position.
func (c *Collection[T]) Put(account string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.accounts[account]
	if !ok {
		s = &shard[T]{byID: make(map[string]T)}
		c.accounts[account] = s
	}

	entityID := v.ObjectID()
	if _, exists := s.byID[entityID]; !exists {
		s.order = append(s.order, entityID)
	}
	s.byID[entityID] = v
}

// Get returns the entity with the given id, reporting whether it exists.
func (c *Collection[T]) Get(account, entityID string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if s, ok := c.accounts[account]; ok {
		v, ok := s.byID[entityID]
		return v, ok
	}

	var zero T
	return zero, false
}

// Contains reports whether an entity with the given id exists in the
// account.
func (c *Collection[T]) Contains(account, entityID string) bool {
	_, ok := c.Get(account, entityID)
	return ok
}

// All returns every entity stored for the account in insertion order.
func (c *Collection[T]) All(account string) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.accounts[account]
	if !ok {
		return []T{}
	}

	out := make([]T, 0, len(s.order))
	for _, entityID := range s.order {
		out = append(out, s.byID[entityID])
	}

	return out
}

// Len returns the number of entities stored for the account.
func (c *Collection[T]) Len(account string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if s, ok := c.accounts[account]; ok {
		return len(s.order)
	}

	return 0
}

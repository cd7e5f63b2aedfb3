/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package route

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// ErrNotFound is returned by Store.Get when no route has the requested id. Test with errors.Is.
var ErrNotFound = errors.New("route not found")

// ErrIDExhausted is returned by Store.Create when every generated id collided with an existing one.
var ErrIDExhausted = errors.New("unable to generate a unique route id")

// DefaultMaxIDAttempts is the number of ids Create generates before giving up.
const DefaultMaxIDAttempts = 8

// IDGenerator returns a fresh identifier for a new route.
type IDGenerator func() (uuid.UUID, error)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDGenerator replaces the random (version 4) UUID generator used by Create.
func WithIDGenerator(generator IDGenerator) StoreOption {
	return func(store *Store) {
		store.newID = generator
	}
}

// WithMaxIDAttempts sets how many ids Create generates to find one that is not in use.
func WithMaxIDAttempts(n int) StoreOption {
	return func(store *Store) {
		if n > 0 {
			store.maxIDAttempts = n
		}
	}
}

// Store keeps routes in memory. It is safe for concurrent use: any number of Get calls proceed in
// parallel while Create calls are serialized with each other and with Get calls. A route becomes
// visible to Get only after Create has inserted it.
type Store struct {
	newID         IDGenerator
	maxIDAttempts int

	// mutex guards routes.
	mutex  sync.RWMutex
	routes map[uuid.UUID]Route
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	store := &Store{
		newID:         uuid.NewRandom,
		maxIDAttempts: DefaultMaxIDAttempts,
		routes:        map[uuid.UUID]Route{},
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Get returns a copy of the route with the given id.
func (store *Store) Get(id uuid.UUID) (Route, error) {
	store.mutex.RLock()
	route, ok := store.routes[id]
	store.mutex.RUnlock()

	if !ok {
		return Route{}, errors.Wrapf(ErrNotFound, "get route %s", id)
	}
	return route, nil
}

// Create stores a new active route for the user in newRoute and returns a copy of it. An id that is
// already in use is never overwritten; another one is generated instead.
func (store *Store) Create(newRoute NewRoute) (Route, error) {
	route := Route{
		UserID: newRoute.UserID,
		Status: StatusActive,
	}

	for attempt := 0; attempt < store.maxIDAttempts; attempt++ {
		// Generate outside of the lock; the random source may block.
		id, err := store.newID()
		if err != nil {
			return Route{}, errors.Wrap(err, "generate route id")
		}
		route.ID = id

		if store.insert(route) {
			return route, nil
		}
	}

	return Route{}, errors.Wrapf(ErrIDExhausted, "after %d attempts", store.maxIDAttempts)
}

// insert adds route unless its id is taken. It returns false if the id is taken.
func (store *Store) insert(route Route) bool {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if _, exists := store.routes[route.ID]; exists {
		return false
	}
	store.routes[route.ID] = route
	return true
}

// Len returns the number of routes in the store.
func (store *Store) Len() int {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	return len(store.routes)
}

// =============================================================================
// Journal Order Builder - Session Store
// =============================================================================
//
// Processing results are kept in memory between the upload request and the
// follow-up results/download requests, keyed by a generated session id.
//
// The store evicts entries on a TTL, so an abandoned session costs
// nothing after the configured window. Reads of unknown or expired ids
// return ErrNotFound, which the HTTP surface maps to a plain 404 message.
//
// =============================================================================

package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

// ErrNotFound is returned when a session id is unknown or has expired.
var ErrNotFound = errors.New("session not found")

// Store is a bounded, time-evicting map of session id to value. Safe for
// concurrent use.
type Store struct {
	c *cache.Cache
}

// New creates a Store whose entries live for ttl and are swept every
// cleanupInterval.
func New(ttl, cleanupInterval time.Duration) *Store {
	return &Store{c: cache.New(ttl, cleanupInterval)}
}

// Put stores a value under a freshly generated session id and returns
// the id.
func (s *Store) Put(value interface{}) string {
	id := uuid.New().String()[:8]
	s.c.Set(id, value, cache.DefaultExpiration)
	return id
}

// Get retrieves the value for a session id.
func (s *Store) Get(id string) (interface{}, error) {
	v, ok := s.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Len reports the number of live sessions. Expired-but-unswept entries
// may still be counted.
func (s *Store) Len() int {
	return s.c.ItemCount()
}

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutAndGet(t *testing.T) {
	s := New(time.Minute, time.Minute)

	id := s.Put("payload")
	require.Len(t, id, 8)

	v, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "payload", v)
	assert.Equal(t, 1, s.Len())
}

func TestStore_UnknownIDReturnsErrNotFound(t *testing.T) {
	s := New(time.Minute, time.Minute)

	_, err := s.Get("deadbeef")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_EntriesExpire(t *testing.T) {
	s := New(20*time.Millisecond, time.Minute)

	id := s.Put("payload")
	time.Sleep(50 * time.Millisecond)

	_, err := s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_IDsAreUnique(t *testing.T) {
	s := New(time.Minute, time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := s.Put(i)
		assert.False(t, seen[id], "duplicate session id %s", id)
		seen[id] = true
	}
}

package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store keeps one State per browser session. Idle sessions expire after the
// TTL and the least recently used ones are dropped past capacity.
type Store struct {
	sessions *expirable.LRU[string, *State]
	ttl      time.Duration
}

func NewStore(capacity int, ttl time.Duration) *Store {
	return &Store{
		sessions: expirable.NewLRU[string, *State](capacity, nil, ttl),
		ttl:      ttl,
	}
}

// Get looks a session up and renews its expiry.
func (s *Store) Get(id string) (*State, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	st, ok := s.sessions.Get(id)
	if !ok {
		return nil, false
	}
	s.sessions.Add(id, st)
	return st, true
}

func (s *Store) Create() (string, *State) {
	id := uuid.NewString()
	st := NewState()
	s.sessions.Add(id, st)
	return id, st
}

func (s *Store) Len() int {
	return s.sessions.Len()
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Package stores provides concrete in-memory cache store implementations.
package stores

import (
	"sync"
	"time"
)

// RefreshMarkStore tracks the last successful profile refresh per user.
// Marks live for the process lifetime only; they are deliberately not
// persisted. There is no cross-process coordination: the worst-case race
// between two dashboards is a redundant extra refresh, which is idempotent.
type RefreshMarkStore struct {
	marks map[string]time.Time
	mu    sync.RWMutex
}

// NewRefreshMarkStore creates an empty refresh mark store.
func NewRefreshMarkStore() *RefreshMarkStore {
	return &RefreshMarkStore{marks: make(map[string]time.Time)}
}

// Get returns the last refresh instant for a user, if any.
func (s *RefreshMarkStore) Get(userID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mark, exists := s.marks[userID]
	return mark, exists
}

// Set records a successful refresh for a user.
func (s *RefreshMarkStore) Set(userID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marks[userID] = at
}

// ActiveSince returns the users refreshed at or after cutoff. Used by the
// background sweep to keep recently viewed dashboards warm.
func (s *RefreshMarkStore) ActiveSince(cutoff time.Time) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.marks))
	for userID, mark := range s.marks {
		if !mark.Before(cutoff) {
			users = append(users, userID)
		}
	}
	return users
}

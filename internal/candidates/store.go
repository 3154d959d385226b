// Package candidates keeps the candidate profile population in memory
// for match requests.
package candidates

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"spendmatch/internal/domain"
)

// Store is an in-memory candidate profile store. Reads are safe for
// concurrent use; Replace swaps the whole population at once.
type Store struct {
	mu       sync.RWMutex
	profiles []domain.Profile
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// LoadFile reads candidate profiles from a JSON file holding either a
// bare list of profiles or an object with a "users" list.
func LoadFile(path string) ([]domain.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("candidates: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes candidate profiles from JSON: a list or {"users":[...]}.
func Parse(data []byte) ([]domain.Profile, error) {
	var list []domain.Profile
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Users []domain.Profile `json:"users"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Users != nil {
		return wrapped.Users, nil
	}
	return nil, fmt.Errorf("candidates: dataset must be a JSON list or an object with a users list")
}

// Replace swaps in a new candidate population.
func (s *Store) Replace(profiles []domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = profiles
}

// All returns a snapshot of the candidate population.
func (s *Store) All() []domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// Get returns the profile with the given user id.
func (s *Store) Get(userID int) (domain.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p, true
		}
	}
	return domain.Profile{}, false
}

// Len reports the number of stored profiles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// stateTTL bounds how long an issued OAuth state token is accepted.
const stateTTL = 10 * time.Minute

// StateStore issues single-use CSRF state tokens for the OAuth redirect
// flow. A token is consumed on first use and expires after stateTTL.
type StateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	now    func() time.Time
}

// NewStateStore creates an empty state store
func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Issue generates and records a new state token
func (s *StateStore) Issue() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating state: %w", err)
	}
	state := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.states[state] = s.now().Add(stateTTL)
	return state, nil
}

// Consume validates a state token and removes it. Returns false for
// unknown, already-used, or expired tokens.
func (s *StateStore) Consume(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)
	return s.now().Before(expiry)
}

// prune drops expired entries. Caller must hold the lock.
func (s *StateStore) prune() {
	now := s.now()
	for state, expiry := range s.states {
		if now.After(expiry) {
			delete(s.states, state)
		}
	}
}

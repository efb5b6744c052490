// Package session holds the bearer credential identifying the current user.
// All authenticated call sites go through the Session accessor; nothing else
// reads the token store directly.
package session

import (
	"sync"

	"github.com/Carma123/Mental-Health-Support-System/internal"
)

// Session is the in-memory view of the stored credential. Authenticated is
// true iff the token is present and non-empty.
type Session struct {
	mu     sync.RWMutex
	store  TokenStore
	token  string
	logger internal.Logger
}

// New restores any previously stored token without contacting the backend.
// A stored-but-expired token is only discovered when an authenticated call
// fails.
func New(store TokenStore, logger internal.Logger) *Session {
	s := &Session{store: store, logger: logger}
	token, err := store.Load()
	if err != nil {
		logger.Warnf("session: failed to restore token: %v", err)
		return s
	}
	s.token = token
	return s
}

// Login stores the token durably and in memory. The token is opaque; no
// shape validation happens client-side.
func (s *Session) Login(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(token); err != nil {
		return err
	}
	s.token = token
	s.logger.Infof("session: logged in")
	return nil
}

// Logout clears the durable slot and memory state.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.token = ""
	s.logger.Infof("session: logged out")
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

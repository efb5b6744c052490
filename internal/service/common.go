// Package service holds the per-feature state the views render: each
// backend-owned collection is fetched, held locally and mutated through
// create/update/delete operations that re-synchronize with the server.
package service

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrBusy is returned when a mutating operation is already in flight for a
// collection. The views disable their controls on it instead of queueing a
// duplicate submission.
var ErrBusy = errors.New("operation already in progress")

// ErrCancelled is returned when the user declines a confirmation prompt.
var ErrCancelled = errors.New("cancelled by user")

// Confirmer answers a blocking yes/no prompt before a destructive action.
type Confirmer func(prompt string) bool

// listState is the flag-and-message state every synchronizer carries: a
// loading flag for fetches, a busy flag serializing mutations, and the
// error/success messages the view shows. The embedding type guards its own
// collection with the same mutex.
type listState struct {
	mu      sync.Mutex
	loading bool
	busy    bool
	errMsg  string
	infoMsg string
}

// begin claims the mutation slot. Only one mutating operation may be in
// flight per collection.
func (s *listState) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	s.errMsg = ""
	s.infoMsg = ""
	return nil
}

func (s *listState) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *listState) startLoading() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *listState) stopLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *listState) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.infoMsg = ""
	s.mu.Unlock()
}

func (s *listState) setInfo(msg string) {
	s.mu.Lock()
	s.infoMsg = msg
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *listState) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading || s.busy
}

func (s *listState) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *listState) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.infoMsg
}

package state

import (
	"sync"

	"github.com/julianstephens/harmony/internal/logger"
	"github.com/julianstephens/harmony/internal/models"
)

// Listener is called after every successful dispatch with a snapshot of the
// new state.
type Listener func(State)

// Store serializes dispatches and notifies listeners. Reads return copies.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []Listener
}

// NewStore starts from initial; an empty view defaults to the dashboard.
func NewStore(initial State) *Store {
	if initial.View == "" {
		initial.View = models.ViewDashboard
	}
	return &Store{state: initial.Clone()}
}

// Dispatch applies a. On error the state is left unchanged.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	next, err := Reduce(s.state, a)
	if err != nil {
		s.mu.Unlock()
		logger.Debug("Action rejected", "action", Name(a), "error", err)
		return err
	}
	s.state = next
	listeners := append([]Listener(nil), s.listeners...)
	snapshot := next.Clone()
	s.mu.Unlock()

	logger.Debug("Action applied", "action", Name(a))
	for _, l := range listeners {
		l(snapshot)
	}
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Replace swaps in a hydrated state, keeping the current view. Listeners are
// not notified since the new state came from persistence.
func (s *Store) Replace(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.state.View
	s.state = st.Clone()
	s.state.View = view
}

// Subscribe registers l for future dispatches.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

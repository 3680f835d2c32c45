package cloud

import (
	"context"
	"fmt"

	"github.com/julianstephens/harmony/internal/logger"
	"github.com/julianstephens/harmony/internal/state"
)

// Syncer moves state between the in-memory store and a DocumentStore. Load
// and Save never fail: errors are logged and treated as "nothing loaded" or
// "nothing saved". Pull and Push return errors for callers that report them.
type Syncer struct {
	store DocumentStore
}

func NewSyncer(store DocumentStore) *Syncer {
	return &Syncer{store: store}
}

// Pull fetches the user's state, or nil when no document exists.
func (s *Syncer) Pull(ctx context.Context, userID string) (*state.State, error) {
	doc, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document for %s: %w", userID, err)
	}
	if doc == nil {
		return nil, nil
	}
	st, err := DecodeState(doc)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Push merge-sets the user's state.
func (s *Syncer) Push(ctx context.Context, userID string, st state.State) error {
	doc, err := EncodeState(st)
	if err != nil {
		return err
	}
	if err := s.store.MergeSet(ctx, userID, doc); err != nil {
		return fmt.Errorf("failed to save document for %s: %w", userID, err)
	}
	return nil
}

// Load is Pull with errors logged and reported as nil.
func (s *Syncer) Load(ctx context.Context, userID string) *state.State {
	st, err := s.Pull(ctx, userID)
	if err != nil {
		logger.Error("Cloud load failed", "user", userID, "error", err)
		return nil
	}
	return st
}

// Save is Push with errors logged and dropped.
func (s *Syncer) Save(ctx context.Context, userID string, st state.State) {
	if err := s.Push(ctx, userID, st); err != nil {
		logger.Error("Cloud save failed", "user", userID, "error", err)
		return
	}
	logger.Debug("Cloud save", "user", userID, "tasks", len(st.Tasks))
}

// Hydrate replaces the store's state with the user's document when one
// exists and reports whether it did.
func (s *Syncer) Hydrate(ctx context.Context, userID string, store *state.Store) bool {
	st := s.Load(ctx, userID)
	if st == nil {
		return false
	}
	store.Replace(*st)
	return true
}

// AutoSave saves after every successful dispatch on store.
func (s *Syncer) AutoSave(ctx context.Context, userID string, store *state.Store) {
	store.Subscribe(func(st state.State) {
		s.Save(ctx, userID, st)
	})
}

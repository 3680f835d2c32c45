// Package cloud persists the application state as one JSON document per
// user and syncs the in-memory store with it.
package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

// Document is a user's stored state keyed by top-level field name.
type Document map[string]json.RawMessage

// DocumentStore is a per-user document database.
type DocumentStore interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns nil, nil when the user has no document.
	Get(ctx context.Context, userID string) (Document, error)
	// MergeSet upserts doc, replacing only the top-level fields it carries.
	MergeSet(ctx context.Context, userID string, doc Document) error
	// Location describes where documents live, for doctor and logs.
	Location() string
}

// EncodeState turns the persisted collections of st into a document. Nil
// collections are written as empty arrays so a merge clears them.
func EncodeState(st state.State) (Document, error) {
	if st.Tasks == nil {
		st.Tasks = []models.Task{}
	}
	if st.Projects == nil {
		st.Projects = []models.Project{}
	}
	if st.Routine == nil {
		st.Routine = []models.RoutineItem{}
	}
	if st.OffTimes == nil {
		st.OffTimes = []models.OffTime{}
	}
	if st.Chat == nil {
		st.Chat = []models.ChatMessage{}
	}

	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return doc, nil
}

// DecodeState reads a document back into state. Unknown fields are ignored
// and missing ones stay empty.
func DecodeState(doc Document) (state.State, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return state.State{}, fmt.Errorf("failed to decode document: %w", err)
	}
	var st state.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return state.State{}, fmt.Errorf("failed to decode document: %w", err)
	}
	return st, nil
}

// Merge returns dst with every top-level field of src written over it.
func Merge(dst, src Document) Document {
	out := make(Document, len(dst)+len(src))
	maps.Copy(out, dst)
	maps.Copy(out, src)
	return out
}

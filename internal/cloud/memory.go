package cloud

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps documents in a map. Err, when set, is returned by every
// Get and MergeSet.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]Document
	Err  error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

func (m *MemoryStore) Init() error  { return nil }
func (m *MemoryStore) Load() error  { return nil }
func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) Location() string { return "memory" }

func (m *MemoryStore) Get(_ context.Context, userID string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	doc, ok := m.docs[userID]
	if !ok {
		return nil, nil
	}
	return maps.Clone(doc), nil
}

func (m *MemoryStore) MergeSet(_ context.Context, userID string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.docs[userID] = Merge(m.docs[userID], doc)
	return nil
}

package prompts

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps prompt edits in process. It backs development setups without Firestore.
type MemoryStore struct {
	mu  sync.RWMutex
	set Set
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{set: Defaults(), now: time.Now}
}

func (m *MemoryStore) Get(context.Context) (Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set, nil
}

func (m *MemoryStore) Update(_ context.Context, patch Set) (Set, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set = m.set.Merge(patch)
	m.set.UpdatedAt = m.now().UTC()
	return m.set, nil
}

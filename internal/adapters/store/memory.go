// Package store provides knowledge store adapters.
// Clean Architecture: Adapter implementing ports.KnowledgeStore.
package store

import (
	"sync"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/entities"
)

// InMemoryStore keeps the current knowledge base snapshot in memory.
// Snapshots are never modified; Replace swaps the pointer.
type InMemoryStore struct {
	mu sync.RWMutex
	kb *entities.KnowledgeBase
}

// NewInMemoryStore creates a store seeded with an initial snapshot.
func NewInMemoryStore(initial *entities.KnowledgeBase) *InMemoryStore {
	return &InMemoryStore{kb: initial}
}

// Current returns the snapshot used for matching.
func (s *InMemoryStore) Current() *entities.KnowledgeBase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kb
}

// Replace installs a new snapshot. A nil snapshot is ignored.
func (s *InMemoryStore) Replace(kb *entities.KnowledgeBase) {
	if kb == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kb = kb
}

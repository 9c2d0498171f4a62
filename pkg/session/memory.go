package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/travigo/tripsearch/pkg/tripquery"
)

type memoryEntry struct {
	variables tripquery.TripQueryVariables
	expires   time.Time
}

// MemoryStore is the single instance store used when no redis is configured. It keeps deep
// copies so a stored session never shares pointers with a request handler.
type MemoryStore struct {
	TTL time.Duration
	Now func() time.Time

	mutex   sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		TTL:     ttl,
		Now:     time.Now,
		entries: map[string]memoryEntry{},
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (tripquery.TripQueryVariables, error) {
	m.mutex.RLock()
	entry, exists := m.entries[id]
	m.mutex.RUnlock()

	if !exists || m.expired(entry) {
		return tripquery.TripQueryVariables{}, ErrNotFound
	}

	variables, err := entry.variables.Clone()
	if err != nil {
		return tripquery.TripQueryVariables{}, fmt.Errorf("failed to copy session %s: %w", id, err)
	}

	return variables, nil
}

func (m *MemoryStore) Put(_ context.Context, id string, variables tripquery.TripQueryVariables) error {
	stored, err := variables.Clone()
	if err != nil {
		return fmt.Errorf("failed to copy session %s: %w", id, err)
	}

	entry := memoryEntry{variables: stored}
	if m.TTL > 0 {
		entry.expires = m.Now().Add(m.TTL)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.entries[id] = entry
	m.evictExpired()

	return nil
}

func (m *MemoryStore) expired(entry memoryEntry) bool {
	return !entry.expires.IsZero() && !m.Now().Before(entry.expires)
}

// evictExpired must be called with the write lock held
func (m *MemoryStore) evictExpired() {
	for id, entry := range m.entries {
		if m.expired(entry) {
			delete(m.entries, id)
		}
	}
}

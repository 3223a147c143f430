package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-keychain/models"
)

// MemoryBackend is an in-process [Backend]. Items live only as long as the
// value itself; it is used by tests and when no persistent store is
// configured.
type MemoryBackend struct {
	mu    sync.RWMutex
	items []models.AttributeMap
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Add implements [Backend].
func (m *MemoryBackend) Add(ctx context.Context, attributes models.AttributeMap) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pk := primaryKeyOf(attributes)
	for _, item := range m.items {
		if primaryKeyOf(item) == pk {
			return newStoreError(OpAdd, StatusDuplicateItem, nil)
		}
	}

	m.items = append(m.items, storedAttributes(attributes))
	return nil
}

// Delete implements [Backend].
func (m *MemoryBackend) Delete(ctx context.Context, query models.AttributeMap) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.items[:0]
	for _, item := range m.items {
		if !matches(item, query) {
			kept = append(kept, item)
		}
	}

	removed := len(m.items) - len(kept)
	clear(m.items[len(kept):])
	m.items = kept

	if removed == 0 {
		return newStoreError(OpDelete, StatusItemNotFound, nil)
	}
	return nil
}

// CopyMatching implements [Backend].
func (m *MemoryBackend) CopyMatching(ctx context.Context, query models.AttributeMap) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, item := range m.items {
		if matches(item, query) {
			return shapeResult(item, query), nil
		}
	}

	return nil, newStoreError(OpCopyMatching, StatusItemNotFound, nil)
}

// Len returns the number of stored items.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}

package persist

import (
	"context"
	"sync"
)

// DefaultKey names the slot holding the annotation snapshot.
const DefaultKey = "annotations"

// DefaultQuota mirrors the per-origin budget of browser local storage.
const DefaultQuota = 5 << 20

// Slot is a durable string key-value store. Get returns ErrNotFound for an
// absent key and Set returns ErrQuotaExceeded when the value does not fit.
type Slot interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemorySlot keeps values in process memory. Safe for concurrent use.
type MemorySlot struct {
	mu    sync.RWMutex
	data  map[string]string
	used  int64
	quota int64
}

// NewMemorySlot returns a slot that refuses writes once the combined size of
// keys and values would exceed quota bytes. A quota of zero or less means
// unlimited.
func NewMemorySlot(quota int64) *MemorySlot {
	return &MemorySlot{data: make(map[string]string), quota: quota}
}

// Get returns the value stored under key.
func (m *MemorySlot) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set overwrites key. An oversized value leaves the previous one in place.
func (m *MemorySlot) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	used := m.used
	if old, ok := m.data[key]; ok {
		used -= int64(len(key) + len(old))
	}
	used += int64(len(key) + len(value))
	if m.quota > 0 && used > m.quota {
		return ErrQuotaExceeded
	}
	m.data[key] = value
	m.used = used
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (m *MemorySlot) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.data[key]; ok {
		m.used -= int64(len(key) + len(old))
		delete(m.data, key)
	}
	return nil
}

// Used reports the bytes currently held.
func (m *MemorySlot) Used() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}

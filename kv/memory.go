package kv

import (
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process KeyValueStore with per-key TTLs. It backs the
// test suite; production deployments use redis.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ KeyValueStore = (*Memory)(nil)

func NewMemoryKV() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// SetClock overrides the time source, letting tests step past TTLs
// without sleeping.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *Memory) Set(key, value string, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if exp > 0 {
		entry.expiresAt = m.now().Add(exp)
	}
	m.entries[key] = entry
	return nil
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}

	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return "", ErrNotFound
	}

	return entry.value, nil
}

func (m *Memory) Del(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}

	expired := !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)
	delete(m.entries, key)
	if expired {
		return "", ErrNotFound
	}

	return key, nil
}

// TTL reports the remaining lifetime of a key. Test helper only.
func (m *Memory) TTL(key string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return 0, false
	}
	if entry.expiresAt.IsZero() {
		return 0, true
	}

	return entry.expiresAt.Sub(m.now()), true
}

// Keys returns every stored key, expired or not. Test helper only.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}

	return keys
}

func (m *Memory) Close() error {
	return nil
}

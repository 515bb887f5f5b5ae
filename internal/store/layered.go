package store

import "time"

// LayeredBackend reads through memory before disk and promotes disk hits
// into memory. Writes go to both layers.
type LayeredBackend struct {
	memory Backend
	disk   Backend
}

// NewLayeredBackend creates a layered backend.
func NewLayeredBackend(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredBackend {
	return &LayeredBackend{
		memory: NewMemoryBackend(memoryTTL, 10*time.Minute),
		disk:   NewDiskBackend(diskDir, diskTTL),
	}
}

// Get retrieves a record (memory first, then disk).
func (b *LayeredBackend) Get(key string) ([]byte, bool) {
	if val, found := b.memory.Get(key); found {
		return val, true
	}

	if val, found := b.disk.Get(key); found {
		_ = b.memory.Set(key, val, 0) // promote with default TTL
		return val, true
	}

	return nil, false
}

// Set stores a record in both layers.
func (b *LayeredBackend) Set(key string, value []byte, ttl time.Duration) error {
	if err := b.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return b.disk.Set(key, value, ttl)
}

// Delete removes a record from both layers.
func (b *LayeredBackend) Delete(key string) error {
	if err := b.memory.Delete(key); err != nil {
		return err
	}
	return b.disk.Delete(key)
}

// Clear removes all records from both layers.
func (b *LayeredBackend) Clear() error {
	if err := b.memory.Clear(); err != nil {
		return err
	}
	return b.disk.Clear()
}

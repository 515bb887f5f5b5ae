package store

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryBackend keeps records in process memory with a TTL. Suited to
// the read-heavy view path, where the same stored record is re-derived
// on every render.
type MemoryBackend struct {
	cache *gocache.Cache
}

// NewMemoryBackend creates a memory backend.
func NewMemoryBackend(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryBackend {
	return &MemoryBackend{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a record's bytes.
func (b *MemoryBackend) Get(key string) ([]byte, bool) {
	if val, found := b.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a record's bytes with the given TTL.
func (b *MemoryBackend) Set(key string, value []byte, ttl time.Duration) error {
	b.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a record.
func (b *MemoryBackend) Delete(key string) error {
	b.cache.Delete(key)
	return nil
}

// Clear removes all records.
func (b *MemoryBackend) Clear() error {
	b.cache.Flush()
	return nil
}

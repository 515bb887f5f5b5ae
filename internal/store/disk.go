package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskBackend persists records as JSON files. A zero TTL means records
// never expire, which is the default for extracted documents.
type DiskBackend struct {
	dir string
	ttl time.Duration
}

// NewDiskBackend creates a disk backend rooted at dir.
func NewDiskBackend(dir string, ttl time.Duration) *DiskBackend {
	return &DiskBackend{
		dir: dir,
		ttl: ttl,
	}
}

type diskEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves a record's bytes from disk.
func (b *DiskBackend) Get(key string) ([]byte, bool) {
	path := b.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Data, true
}

// Set stores a record's bytes on disk.
func (b *DiskBackend) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = b.ttl
	}

	entry := diskEntry{Data: value}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	if err := os.WriteFile(b.path(key), data, 0644); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}

	return nil
}

// Delete removes a record from disk.
func (b *DiskBackend) Delete(key string) error {
	return os.Remove(b.path(key))
}

// Clear removes all stored records.
func (b *DiskBackend) Clear() error {
	return os.RemoveAll(b.dir)
}

// path generates the file path for a record key.
func (b *DiskBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

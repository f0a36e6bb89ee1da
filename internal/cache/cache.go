// Package cache persists parsed source units between runs, keyed by
// content hash so edits invalidate entries automatically.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/sweeplab/sweep/pkg/models"
	"github.com/zeebo/blake3"
)

// Cache is a file-based store under the project's .sweep directory.
// A disabled cache is a valid zero-cost no-op.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

type entry struct {
	Hash      string    `json:"hash"`
	Timestamp time.Time `json:"timestamp"`
	Data      []byte    `json:"data"`
}

// New creates a cache rooted at dir with entries valid for ttlHours.
func New(dir string, ttlHours int, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlHours) * time.Hour,
		enabled: true,
	}, nil
}

// HashBytes computes a BLAKE3 hash of data as a hex string.
func HashBytes(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// GetUnit returns the cached parse of key when its stored hash matches
// the current content hash and the entry has not expired.
func (c *Cache) GetUnit(key, hash string) (*models.SourceUnit, bool) {
	if !c.enabled {
		return nil, false
	}

	raw, err := os.ReadFile(c.keyPath(key))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false
	}
	if e.Hash != hash {
		return nil, false
	}
	if time.Since(e.Timestamp) > c.ttl {
		os.Remove(c.keyPath(key))
		return nil, false
	}

	var unit models.SourceUnit
	if err := json.Unmarshal(e.Data, &unit); err != nil {
		return nil, false
	}
	return &unit, true
}

// PutUnit stores a parsed unit under key with its content hash.
func (c *Cache) PutUnit(key, hash string, unit *models.SourceUnit) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(unit)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(entry{
		Hash:      hash,
		Timestamp: time.Now(),
		Data:      data,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(key), raw, 0o600)
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	return os.RemoveAll(c.dir)
}

func (c *Cache) keyPath(key string) string {
	h := blake3.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:])+".json")
}

// Package dataset holds the one in-memory record collection the dashboard
// works on. Every upload replaces it wholesale; nothing is persisted and
// nothing is updated incrementally.
package dataset

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/opsboard/backend/internal/types"
)

// Cache stores the current record collection and its metadata
type Cache struct {
	records []types.Record
	meta    types.DatasetMeta
	mu      sync.RWMutex
}

// NewCache creates an empty dataset cache
func NewCache() *Cache {
	return &Cache{
		records: make([]types.Record, 0),
	}
}

// Replace swaps in a freshly decoded record collection, assigning a new
// dataset ID. The previous collection is discarded entirely.
func (c *Cache) Replace(records []types.Record, filename string) types.DatasetMeta {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = records
	c.meta = types.DatasetMeta{
		DatasetID:   uuid.New().String(),
		Filename:    filename,
		UploadedAt:  time.Now().UTC(),
		RecordCount: len(records),
	}
	return c.meta
}

// Clear drops the current collection, returning the zeroed metadata
func (c *Cache) Clear() types.DatasetMeta {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = make([]types.Record, 0)
	c.meta = types.DatasetMeta{}
	return c.meta
}

// Snapshot returns a copy of the current collection. The copy keeps the
// aggregation input immutable even if a concurrent upload replaces the
// cache mid-computation.
func (c *Cache) Snapshot() []types.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]types.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Meta returns the current dataset metadata
func (c *Cache) Meta() types.DatasetMeta {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.meta
}

// Size returns the current record count
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

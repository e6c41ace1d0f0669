package corpus

import (
	"sync"

	"github.com/poiesic/chronicle/core"
)

// Cache holds a loaded corpus in memory so repeated retrieval calls avoid
// re-reading the file. It is safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	path   string
	loader func(path string) ([]*core.Unit, int, error)
	units  []*core.Unit
	loaded bool
}

// NewCache creates a cache over the corpus at path, loading through the
// given loader (typically Store.Require).
func NewCache(path string, loader func(path string) ([]*core.Unit, int, error)) *Cache {
	return &Cache{path: path, loader: loader}
}

// Units returns the cached corpus, loading it on first use.
func (c *Cache) Units() ([]*core.Unit, error) {
	c.mu.RLock()
	if c.loaded {
		units := c.units
		c.mu.RUnlock()
		return units, nil
	}
	c.mu.RUnlock()

	return c.Reload()
}

// Reload re-reads the corpus from disk unconditionally.
func (c *Cache) Reload() ([]*core.Unit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	units, _, err := c.loader(c.path)
	if err != nil {
		return nil, err
	}
	c.units = units
	c.loaded = true
	return units, nil
}

// Invalidate drops the cached corpus so the next Units call reloads it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.units = nil
	c.loaded = false
}

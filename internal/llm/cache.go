package llm

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Cache stores generated descriptions keyed by body hash, provider and
// model, so unchanged functions never hit the network twice. It is held
// in memory and optionally persisted to a JSON file between runs.
type Cache struct {
	mu      sync.RWMutex
	path    string
	entries map[string]string
}

// NewCache loads the cache file at path, or starts empty when the file is
// missing or unreadable. An empty path keeps the cache memory-only.
func NewCache(path string) *Cache {
	c := &Cache{path: path, entries: make(map[string]string)}
	if path == "" {
		return c
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	var entries map[string]string
	if json.Unmarshal(raw, &entries) == nil && entries != nil {
		c.entries = entries
	}
	return c
}

// CacheKey joins the parts of a description's identity. Two functions with
// equal bodies summarized by the same provider and model share an entry.
func CacheKey(bodyHash, provider, model string) string {
	return fmt.Sprintf("%s|%s|%s", bodyHash, provider, model)
}

func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	desc, ok := c.entries[key]
	return desc, ok
}

func (c *Cache) Put(key, description string) {
	if description == "" {
		return
	}
	c.mu.Lock()
	c.entries[key] = description
	c.mu.Unlock()
}

// Len returns the number of cached descriptions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Save writes the cache back to its file. A memory-only cache saves to
// nowhere and reports success.
func (c *Cache) Save() error {
	if c.path == "" {
		return nil
	}
	c.mu.RLock()
	raw, err := json.MarshalIndent(c.entries, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

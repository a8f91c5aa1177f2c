package translate

import "sync"

// translationCache memoizes resolved text for the lifetime of a run.
type translationCache struct {
	entries map[string]string
	mu      sync.RWMutex
}

func newTranslationCache() *translationCache {
	return &translationCache{entries: make(map[string]string)}
}

// get retrieves a resolved value if the input was seen before.
func (c *translationCache) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	return v, ok
}

// set stores a resolved value.
func (c *translationCache) set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// size returns the number of entries in the cache.
func (c *translationCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

package vatspy

import "sync"

// FetchCache is a process-wide cache of raw fetched file content keyed by
// source URL. Pass the same cache to several constructions via
// WithFetchCache to avoid re-downloading unchanged upstream files; call
// Invalidate (or use a fresh cache) to force a re-fetch. Local file paths
// never go through the cache.
type FetchCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewFetchCache returns an empty cache.
func NewFetchCache() *FetchCache {
	return &FetchCache{entries: make(map[string][]byte)}
}

// Get returns the cached content for a URL.
func (c *FetchCache) Get(url string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[url]
	return data, ok
}

// Put stores the content for a URL, replacing any previous entry.
func (c *FetchCache) Put(url string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = data
}

// Invalidate drops the entry for a URL so the next load fetches it again.
func (c *FetchCache) Invalidate(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, url)
}

// Len returns the number of cached entries.
func (c *FetchCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

package proxycache

import (
	"encoding/base64"
	"sync"
	"time"
)

const keyLen = 64

// Cache is a process-local TTL cache for upstream responses, keyed by a
// truncated base64 of the raw request body. It deduplicates identical
// requests within one instance only; entries die on restart.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry

	now func() time.Time // overridable in tests
}

type entry struct {
	resp      Response
	expiresAt time.Time
}

type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Key derives the cache key from the raw request body.
func Key(body []byte) string {
	k := base64.StdEncoding.EncodeToString(body)
	if len(k) > keyLen {
		k = k[:keyLen]
	}
	return k
}

func (c *Cache) Get(key string) (Response, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return Response{}, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return Response{}, false
	}
	return e.resp, true
}

func (c *Cache) Set(key string, resp Response) {
	c.mu.Lock()
	c.entries[key] = entry{resp: resp, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Package memo holds the result cache that instrumented programs call into.
//
// A Cache is an explicit value owned by whoever executes the program. It is
// never process-global: the executor binds the methods of its own Cache into
// the interpreter, so two executors with two caches never observe each other.
// Entries are never evicted and never expire.
package memo

import (
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// KeyMode selects how cache keys are derived from a call.
type KeyMode string

const (
	// KeyByName keys entries by routine name only. Arguments are ignored, so
	// the first computed value is returned for every later call.
	KeyByName KeyMode = "name"
	// KeyByArguments appends a fingerprint of the call arguments to the name.
	KeyByArguments KeyMode = "arguments"
)

// ParseKeyMode validates a user supplied key mode. An empty string selects KeyByName.
func ParseKeyMode(s string) (KeyMode, error) {
	switch KeyMode(s) {
	case "", KeyByName:
		return KeyByName, nil
	case KeyByArguments:
		return KeyByArguments, nil
	default:
		return "", fmt.Errorf("unknown key mode %q (want %q or %q)", s, KeyByName, KeyByArguments)
	}
}

// Stats reports cache usage counters.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Cache maps keys to the first value computed for them.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]any
	group   singleflight.Group
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]any)}
}

// Cached returns the value stored under name, computing it with fn on the
// first call. Concurrent first callers share a single computation.
func (c *Cache) Cached(name string, fn func() any) any {
	return c.fill(name, fn)
}

// CachedArgs is Cached with the arguments folded into the key.
func (c *Cache) CachedArgs(name string, fn func() any, args ...any) any {
	return c.fill(Key(name, args...), fn)
}

func (c *Cache) fill(key string, fn func() any) any {
	if v, ok := c.Load(key); ok {
		c.hits.Add(1)
		return v
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.Load(key); ok {
			return v, nil
		}

		c.misses.Add(1)

		v := fn()
		c.Store(key, v)

		return v, nil
	})

	return v
}

// Load returns the value stored under key.
func (c *Cache) Load(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]

	return v, ok
}

// Store records v under key, replacing any previous value.
func (c *Cache) Store(key string, v any) {
	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Keys returns the stored keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))

	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	sort.Strings(keys)

	return keys
}

// Stats returns a snapshot of the usage counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.Len(),
	}
}

// Key builds the cache key for a call. Without arguments it is the name
// itself, so KeyByName and KeyByArguments agree on zero-argument routines.
func Key(name string, args ...any) string {
	if len(args) == 0 {
		return name
	}

	d := xxhash.New()
	for _, arg := range args {
		_, _ = fmt.Fprintf(d, "%T:%#v", arg, arg)
		_, _ = d.Write([]byte{0})
	}

	return name + "#" + hex.EncodeToString(d.Sum(nil))
}

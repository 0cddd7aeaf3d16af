package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. Must be a power of 2.
	ShardCount = 16

	// DefaultShardCapacity is the per-shard entry limit used when none is given.
	DefaultShardCapacity = 64

	shardMask = ShardCount - 1
)

// Hasher computes the hash used to pick a shard for a key.
type Hasher[K any] func(K) uint64

// StringHasher is an FNV-1a hash of s.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // never fails
	return h.Sum64()
}

// Uint64Hasher returns u unchanged.
func Uint64Hasher(u uint64) uint64 { return u }

// ShardedCache is an LRU cache split into ShardCount independently locked
// shards. Each shard evicts on insertion once it holds capacity entries.
//
// ShardedCache is safe for concurrent use and must not be copied.
type ShardedCache[K comparable, V any] struct {
	shards   [ShardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*shardEntry[K, V]
	order   recency[K]
}

type shardEntry[K comparable, V any] struct {
	value V
	node  *node[K]
}

// NewSharded creates a sharded cache with the given per-shard capacity.
// A capacity <= 0 selects DefaultShardCapacity.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *ShardedCache[K, V] {
	if capacity <= 0 {
		capacity = DefaultShardCapacity
	}
	c := &ShardedCache[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{entries: make(map[K]*shardEntry[K, V])}
	}
	return c
}

func (c *ShardedCache[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get returns the value for key and marks it recently used.
func (c *ShardedCache[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.order.touch(e.node)
	v := e.value
	s.mu.Unlock()
	c.hits.Add(1)
	return v, true
}

// Set stores value under key, evicting the shard's oldest entries if the
// shard is full.
func (c *ShardedCache[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.setLocked(s, key, value)
}

func (c *ShardedCache[K, V]) setLocked(s *shard[K, V], key K, value V) {
	if e, ok := s.entries[key]; ok {
		e.value = value
		s.order.touch(e.node)
		return
	}
	for s.order.len() >= c.capacity {
		old, ok := s.order.popBack()
		if !ok {
			break
		}
		delete(s.entries, old)
		c.evictions.Add(1)
	}
	s.entries[key] = &shardEntry[K, V]{value: value, node: s.order.pushFront(key)}
}

// GetOrCreate returns the value for key or builds it with create. create
// runs under the shard lock, so concurrent callers build a key only once.
func (c *ShardedCache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		s.order.touch(e.node)
		c.hits.Add(1)
		return e.value, nil
	}
	c.misses.Add(1)
	v, err := create()
	if err != nil {
		return v, err
	}
	c.setLocked(s, key, v)
	return v, nil
}

// Delete removes key and reports whether it was present.
func (c *ShardedCache[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.order.remove(e.node)
	delete(s.entries, key)
	return true
}

// Clear empties every shard.
func (c *ShardedCache[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[K]*shardEntry[K, V])
		s.order.clear()
		s.mu.Unlock()
	}
}

// Len returns the total number of entries.
func (c *ShardedCache[K, V]) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Range calls fn for each entry until fn returns false. Shards are locked
// one at a time; fn must not call back into the cache.
func (c *ShardedCache[K, V]) Range(fn func(K, V) bool) {
	for _, s := range c.shards {
		s.mu.Lock()
		for k, e := range s.entries {
			if !fn(k, e.value) {
				s.mu.Unlock()
				return
			}
		}
		s.mu.Unlock()
	}
}

// Stats returns hit, miss and eviction counters.
func (c *ShardedCache[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Len:       c.Len(),
	}
}

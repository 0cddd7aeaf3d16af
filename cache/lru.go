package cache

// Stats reports cache activity since creation or the last Clear.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
	Cost      int64
}

// HitRate returns hits / (hits + misses), or 0 when the cache is unused.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// LRU is a least-recently-used cache bounded by entry count and total cost.
//
// Put never evicts. Limits are enforced by Trim, which the renderer calls
// at the start of each frame, before any lookup, so a value obtained
// during a frame is never dropped while that frame is being assembled.
//
// LRU is not safe for concurrent use; each renderer owns its own.
type LRU[K comparable, V any] struct {
	entries  map[K]*lruEntry[K, V]
	order    recency[K]
	maxCount int
	maxCost  int64
	cost     int64

	hits, misses, evictions uint64

	// OnEvict, when set, is called for every entry removed by Trim or Clear.
	OnEvict func(K, V)
}

type lruEntry[K comparable, V any] struct {
	value V
	cost  int64
	node  *node[K]
}

// NewLRU creates a cache holding at most maxCount entries with a total
// cost of at most maxCost. A non-positive limit disables that bound.
func NewLRU[K comparable, V any](maxCount int, maxCost int64) *LRU[K, V] {
	return &LRU[K, V]{
		entries:  make(map[K]*lruEntry[K, V]),
		maxCount: maxCount,
		maxCost:  maxCost,
	}
}

// Get returns the value stored under key and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.touch(e.node)
	return e.value, true
}

// Contains reports whether key is present without touching recency.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Put stores value under key with the given cost, replacing any previous
// value.
func (c *LRU[K, V]) Put(key K, value V, cost int64) {
	if cost < 0 {
		cost = 0
	}
	if e, ok := c.entries[key]; ok {
		c.cost += cost - e.cost
		e.value = value
		e.cost = cost
		c.order.touch(e.node)
		return
	}
	c.entries[key] = &lruEntry[K, V]{
		value: value,
		cost:  cost,
		node:  c.order.pushFront(key),
	}
	c.cost += cost
}

// GetOrCreate returns the cached value for key, building and storing it
// with create on a miss. An error from create is returned and nothing is
// stored.
func (c *LRU[K, V]) GetOrCreate(key K, create func() (V, int64, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, cost, err := create()
	if err != nil {
		return v, err
	}
	c.Put(key, v, cost)
	return v, nil
}

// Delete removes key. It reports whether the key was present.
func (c *LRU[K, V]) Delete(key K) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.remove(e.node)
	c.cost -= e.cost
	delete(c.entries, key)
	return true
}

// Trim evicts least recently used entries until both limits hold.
// It returns the number of entries evicted.
func (c *LRU[K, V]) Trim() int {
	evicted := 0
	for c.over() {
		key, ok := c.order.popBack()
		if !ok {
			break
		}
		e := c.entries[key]
		delete(c.entries, key)
		c.cost -= e.cost
		evicted++
		if c.OnEvict != nil {
			c.OnEvict(key, e.value)
		}
	}
	c.evictions += uint64(evicted)
	return evicted
}

func (c *LRU[K, V]) over() bool {
	if c.maxCount > 0 && len(c.entries) > c.maxCount {
		return true
	}
	return c.maxCost > 0 && c.cost > c.maxCost
}

// SetLimits changes the bounds. Entries over the new limits are removed on
// the next Trim.
func (c *LRU[K, V]) SetLimits(maxCount int, maxCost int64) {
	c.maxCount = maxCount
	c.maxCost = maxCost
}

// Limits returns the configured bounds.
func (c *LRU[K, V]) Limits() (maxCount int, maxCost int64) {
	return c.maxCount, c.maxCost
}

// Clear removes every entry and resets statistics.
func (c *LRU[K, V]) Clear() {
	if c.OnEvict != nil {
		for k, e := range c.entries {
			c.OnEvict(k, e.value)
		}
	}
	c.entries = make(map[K]*lruEntry[K, V])
	c.order.clear()
	c.cost = 0
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int { return len(c.entries) }

// Cost returns the accumulated cost of all entries.
func (c *LRU[K, V]) Cost() int64 { return c.cost }

// Stats returns a snapshot of the cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Len:       len(c.entries),
		Cost:      c.cost,
	}
}

// Package cache provides the generic caches used by the renderer.
//
// # LRU[K, V]
//
// A single-owner LRU cache bounded by entry count and by accumulated cost
// (typically bytes). Insertions never evict: the owner calls Trim between
// frames so that values handed out during a render stay valid until the
// render completes.
//
//	c := cache.NewLRU[Key, *Bitmap](10000, 128<<20)
//	c.Put(k, bm, int64(len(bm.Buf)))
//	...
//	c.Trim()
//
// # ShardedCache[K, V]
//
// A 16-shard LRU safe for concurrent use. The font registry shared by
// several renderers lives in one.
//
//	faces := cache.NewSharded[string, *Face](64, cache.StringHasher)
package cache

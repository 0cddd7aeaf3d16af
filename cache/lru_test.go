package cache

import (
	"errors"
	"strconv"
	"testing"
)

func TestLRUGetPut(t *testing.T) {
	c := NewLRU[string, int](10, 0)
	c.Put("a", 1, 1)

	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) found a missing key")
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("stats = %+v; want 1 hit 1 miss", st)
	}
}

func TestLRUPutNeverEvicts(t *testing.T) {
	c := NewLRU[int, int](2, 0)
	for i := range 5 {
		c.Put(i, i, 1)
	}
	if c.Len() != 5 {
		t.Fatalf("Len = %d before Trim; want 5", c.Len())
	}
	if n := c.Trim(); n != 3 {
		t.Errorf("Trim evicted %d; want 3", n)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d after Trim; want 2", c.Len())
	}
	// 3 and 4 are most recent.
	for _, k := range []int{3, 4} {
		if !c.Contains(k) {
			t.Errorf("key %d evicted", k)
		}
	}
}

func TestLRUTrimByCost(t *testing.T) {
	c := NewLRU[string, []byte](0, 100)
	c.Put("a", make([]byte, 60), 60)
	c.Put("b", make([]byte, 60), 60)
	c.Get("a") // b is now oldest

	c.Trim()
	if c.Contains("b") {
		t.Error("b should have been evicted")
	}
	if !c.Contains("a") {
		t.Error("a should remain")
	}
	if c.Cost() != 60 {
		t.Errorf("Cost = %d; want 60", c.Cost())
	}
}

func TestLRUReplaceAdjustsCost(t *testing.T) {
	c := NewLRU[string, int](0, 0)
	c.Put("a", 1, 10)
	c.Put("a", 2, 4)
	if c.Cost() != 4 {
		t.Errorf("Cost = %d; want 4", c.Cost())
	}
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) = %d; want 2", v)
	}
}

func TestLRUGetOrCreate(t *testing.T) {
	c := NewLRU[string, int](0, 0)
	calls := 0
	create := func() (int, int64, error) {
		calls++
		return 7, 1, nil
	}
	for range 3 {
		v, err := c.GetOrCreate("k", create)
		if err != nil || v != 7 {
			t.Fatalf("GetOrCreate = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times; want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrCreate("bad", func() (int, int64, error) { return 0, 0, boom }); !errors.Is(err, boom) {
		t.Errorf("err = %v; want boom", err)
	}
	if c.Contains("bad") {
		t.Error("failed create must not be stored")
	}
}

func TestLRUOnEvictAndClear(t *testing.T) {
	c := NewLRU[int, int](1, 0)
	var evicted []int
	c.OnEvict = func(k, _ int) { evicted = append(evicted, k) }
	c.Put(1, 1, 0)
	c.Put(2, 2, 0)
	c.Trim()
	if len(evicted) != 1 || evicted[0] != 1 {
		t.Errorf("evicted = %v; want [1]", evicted)
	}
	c.Clear()
	if c.Len() != 0 || c.Cost() != 0 {
		t.Errorf("Clear left %d entries cost %d", c.Len(), c.Cost())
	}
	if len(evicted) != 2 {
		t.Errorf("Clear did not report eviction: %v", evicted)
	}
}

func TestLRUDelete(t *testing.T) {
	c := NewLRU[string, int](0, 0)
	c.Put("a", 1, 3)
	if !c.Delete("a") {
		t.Error("Delete(a) = false")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true")
	}
	if c.Cost() != 0 {
		t.Errorf("Cost = %d; want 0", c.Cost())
	}
}

func TestShardedCache(t *testing.T) {
	c := NewSharded[string, int](2, StringHasher)
	for i := range 100 {
		c.Set(strconv.Itoa(i), i)
	}
	if n := c.Len(); n > 2*ShardCount {
		t.Errorf("Len = %d; want <= %d", n, 2*ShardCount)
	}
	c.Set("x", 42)
	if v, ok := c.Get("x"); !ok || v != 42 {
		t.Errorf("Get(x) = %d, %v", v, ok)
	}
	if !c.Delete("x") {
		t.Error("Delete(x) = false")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
}

func TestShardedGetOrCreateConcurrent(t *testing.T) {
	c := NewSharded[string, int](0, StringHasher)
	done := make(chan struct{})
	var calls int
	for range 8 {
		go func() {
			_, _ = c.GetOrCreate("k", func() (int, error) {
				calls++ // guarded by the shard lock
				return 1, nil
			})
			done <- struct{}{}
		}()
	}
	for range 8 {
		<-done
	}
	if calls != 1 {
		t.Errorf("create ran %d times; want 1", calls)
	}
}

func BenchmarkLRUGet(b *testing.B) {
	c := NewLRU[int, int](1024, 0)
	for i := range 1024 {
		c.Put(i, i, 1)
	}
	b.ResetTimer()
	for i := range b.N {
		c.Get(i & 1023)
	}
}

package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestGetPut(t *testing.T) {
	c := New[uint64, string](8, Uint64Hasher)

	if _, ok := c.Get(1); ok {
		t.Error("empty cache should miss")
	}
	c.Put(1, "one")
	v, ok := c.Get(1)
	if !ok || v != "one" {
		t.Errorf("Get(1) = %q, %v", v, ok)
	}
	if c.Hits() != 1 || c.Misses() != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", c.Hits(), c.Misses())
	}
}

func TestPutReplaces(t *testing.T) {
	c := New[uint64, int](4, Uint64Hasher)
	c.Put(7, 1)
	c.Put(7, 2)
	if v, _ := c.Get(7); v != 2 {
		t.Errorf("Get(7) = %d, want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	c := New[uint64, int](2, Uint64Hasher)

	// Keys 0, 16, 32 land in the same shard (multiples of ShardCount).
	c.Put(0, 0)
	c.Put(16, 16)
	c.Get(0) // 0 is now most recently used
	c.Put(32, 32)

	if _, ok := c.Get(16); ok {
		t.Error("16 should have been evicted as least recently used")
	}
	if _, ok := c.Get(0); !ok {
		t.Error("0 should survive (recently used)")
	}
	if _, ok := c.Get(32); !ok {
		t.Error("32 should survive (just inserted)")
	}
}

func TestInvalidateAndClear(t *testing.T) {
	c := New[uint64, int](8, Uint64Hasher)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Invalidate(1)
	if _, ok := c.Get(1); ok {
		t.Error("invalidated entry should miss")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[uint64, int](64, Uint64Hasher)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				k := uint64(g*1000 + i)
				c.Put(k, i)
				c.Get(k)
			}
		}(g)
	}
	wg.Wait()
}

func BenchmarkCacheHit(b *testing.B) {
	c := New[uint64, string](256, Uint64Hasher)
	for i := uint64(0); i < 256; i++ {
		c.Put(i, fmt.Sprintf("v%d", i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(uint64(i) % 256)
	}
}

package cache_test

import (
	"fmt"
	"testing"
	"time"

	cache "github.com/rkandari/bucket-cache"
)

//
// ================= SINGLE THREAD BENCH =================
//

func BenchmarkCacheGetHit(b *testing.B) {
	c := cache.New()
	c.Set("key", "value", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key", nil)
	}
}

func BenchmarkCacheGetMiss(b *testing.B) {
	c := cache.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(fmt.Sprintf("miss.%d", i), nil)
	}
}

func BenchmarkCacheSet(b *testing.B) {
	c := cache.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(fmt.Sprintf("key.%d", i), i, 60)
	}
}

func BenchmarkCacheSetReplace(b *testing.B) {
	c := cache.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set("key", i, 60)
	}
}

//
// ================= GC BENCH =================
//

func BenchmarkCacheGC(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		clk := newTestClock()
		c := cache.New(cache.WithClock(clk.Now))
		// 10k entries spread over 100 distinct timestamp buckets, all
		// due by the time GC runs.
		for j := 0; j < 10000; j++ {
			c.Set(fmt.Sprintf("key.%d", j), j, time.Duration(j%100+1)*time.Second)
		}
		clk.Advance(200 * time.Second)
		b.StartTimer()

		c.GC()
	}
}

//
// ================= CONCURRENT BENCH =================
//

func BenchmarkSyncCacheParallelGet(b *testing.B) {
	c := cache.NewSync(nil)
	for i := 0; i < 1000; i++ {
		c.Set(fmt.Sprintf("key.%d", i), i, nil)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Get("key.42", nil)
		}
	})
}

package main

import (
	"fmt"
	"time"

	cache "github.com/rkandari/bucket-cache"
)

// A short walk through the cache surface: writes with and without TTL,
// lazy expiry, batch operations, and an explicit GC sweep.
func main() {
	c := cache.New()

	fmt.Println("================ BUCKET CACHE DEMO ================")

	// ---------------- Basic writes ----------------
	c.Set("greeting", "hello", nil)
	c.Set("token.abc", "secret", 2)
	c.Set("profile.ana", map[string]any{"name": "Ana", "age": 34}, 90*time.Second)

	v, _ := c.Get("greeting", "<absent>")
	fmt.Println("greeting    :", v)
	v, _ = c.Get("profile.ana", "<absent>")
	fmt.Println("profile.ana :", v)
	fmt.Println("items       :", c.ItemsCount())

	// ---------------- Validation ----------------
	if _, err := c.Get("not a valid key!", nil); err != nil {
		fmt.Println("bad key     :", err)
	}
	if ok, _ := c.Set("handler", func() {}, nil); !ok {
		fmt.Println("bad value   : rejected (cannot be stored faithfully)")
	}

	// ---------------- Batch operations ----------------
	c.SetMultiple(map[string]any{"a": 1, "b": 2, "c": 3}, 60)
	got, _ := c.GetMultiple([]string{"a", "b", "missing"}, 0)
	for pair := got.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Printf("batch get   : %s = %v\n", pair.Key, pair.Value)
	}

	// ---------------- Lazy expiry ----------------
	fmt.Println("\nwaiting for token.abc to expire...")
	time.Sleep(2100 * time.Millisecond)

	fmt.Println("items before touch :", c.ItemsCount())
	v, _ = c.Get("token.abc", "<absent>")
	fmt.Println("token.abc          :", v)
	fmt.Println("items after touch  :", c.ItemsCount())

	// ---------------- Explicit sweep ----------------
	c.Set("short.1", "x", 1)
	c.Set("short.2", "y", 1)
	time.Sleep(1100 * time.Millisecond)

	fmt.Println("\nitems before gc :", c.ItemsCount())
	c.GC()
	fmt.Println("items after gc  :", c.ItemsCount())

	c.Clear()
	fmt.Println("\nitems after clear :", c.ItemsCount())
}

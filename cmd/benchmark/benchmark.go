package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	cache "github.com/rkandari/bucket-cache"
)

// workload describes one benchmark run. Every field can be overridden
// from a TOML file passed with -config.
type workload struct {
	Entries      int   `toml:"entries"`
	Readers      int   `toml:"readers"`
	OpsPerReader int   `toml:"ops_per_reader"`
	TTLSeconds   int64 `toml:"ttl_seconds"`
	RunGC        bool  `toml:"run_gc"`
}

func defaultWorkload() workload {
	return workload{
		Entries:      100000,
		Readers:      200,
		OpsPerReader: 5000,
		TTLSeconds:   60,
		RunGC:        true,
	}
}

func loadWorkload(path string) (workload, error) {
	w := defaultWorkload()
	if path == "" {
		return w, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return w, err
	}
	if err := toml.Unmarshal(raw, &w); err != nil {
		return w, err
	}
	return w, nil
}

func main() {
	configPath := flag.String("config", "", "optional TOML workload file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	w, err := loadWorkload(*configPath)
	if err != nil {
		log.Error("load workload", "path", *configPath, "err", err)
		os.Exit(1)
	}
	log.Info("workload",
		"entries", w.Entries,
		"readers", w.Readers,
		"ops_per_reader", w.OpsPerReader,
		"ttl_seconds", w.TTLSeconds,
		"run_gc", w.RunGC,
	)

	c := cache.NewSync(nil)

	fmt.Println("\n================ CACHE LOAD BENCHMARK =================")

	// ---------------- Preload ----------------
	fmt.Println("Preloading cache...")
	preloadStart := time.Now()
	for i := 0; i < w.Entries; i++ {
		key := fmt.Sprintf("key.%d", i)
		if _, err := c.Set(key, i, w.TTLSeconds); err != nil {
			log.Error("preload", "key", key, "err", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Preload complete (%d entries in %v).\n", w.Entries, time.Since(preloadStart))

	// ---------------- Warmup ----------------
	fmt.Println("Warming up cache...")
	for i := 0; i < 10000; i++ {
		c.Get(fmt.Sprintf("key.%d", i%w.Entries), nil)
	}
	fmt.Println("Warmup complete.")

	// ---------------- Read load ----------------
	fmt.Println("Running concurrency benchmark...")
	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(w.Readers)
	for i := 0; i < w.Readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < w.OpsPerReader; j++ {
				c.Get(fmt.Sprintf("key.%d", j%w.Entries), nil)
			}
		}()
	}
	wg.Wait()

	duration := time.Since(start)
	totalOps := w.Readers * w.OpsPerReader

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Items In Cache   : %d\n", c.ItemsCount())

	// ---------------- GC ----------------
	if w.RunGC {
		gcStart := time.Now()
		c.GC()
		fmt.Printf("GC Sweep         : %v (%d items remain)\n", time.Since(gcStart), c.ItemsCount())
	}
	fmt.Println("=========================================")
}

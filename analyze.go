package uvmend

import (
	"runtime"
	"sync"
)

// AnalyzeMesh partitions the mesh into islands and measures each one
// without mutating anything. It is the read-only half of Repair: useful for
// a "report first, fix later" flow.
func AnalyzeMesh(m *Mesh, cfg Config) []IslandMetrics {
	islands := DetectIslands(m)
	out := make([]IslandMetrics, len(islands))
	for i, island := range islands {
		out[i] = MeasureIsland(m, island, cfg)
	}
	return out
}

// AnalyzeMeshParallel is AnalyzeMesh with the per-island measurements fanned
// out across workers. Islands are independent and the pass never writes to
// the mesh, so this is safe as long as the caller is not mutating the mesh
// concurrently. Results match AnalyzeMesh exactly, in the same order.
//
// If workers <= 0, GOMAXPROCS is used.
func AnalyzeMeshParallel(m *Mesh, cfg Config, workers int) []IslandMetrics {
	islands := DetectIslands(m)
	out := make([]IslandMetrics, len(islands))

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(islands) {
		workers = len(islands)
	}
	if workers <= 1 {
		for i, island := range islands {
			out[i] = MeasureIsland(m, island, cfg)
		}
		return out
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = MeasureIsland(m, islands[i], cfg)
			}
		}()
	}
	for i := range islands {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

package oddsum

import (
	"sync"
)

// CountShared splits the rows of g into threads chunks and counts every
// chunk in its own goroutine. Goroutine i increments counters[i] of a
// counters slice shared by all goroutines, and the slots are added up once
// all goroutines have terminated.
//
// Only goroutine i ever writes slot i, so there is no data race, but
// neighbouring slots live on the same cache line and every increment
// invalidates that line for the other goroutines. Compare with
// CountSharedPadded and CountMessage.
func CountShared(g Grid, threads int) (int, error) {
	chunks, err := Partition(g, threads)
	if err != nil {
		return 0, err
	}
	counters := make([]int, len(chunks))
	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for i, chunk := range chunks {
		go func() {
			defer wg.Done()
			for _, row := range chunk {
				for _, v := range row {
					if v%2 != 0 {
						counters[i]++
					}
				}
			}
		}()
	}
	wg.Wait()
	sum := 0
	for _, count := range counters {
		sum += count
	}
	return sum, nil
}

// cacheLineSize is the cache line size of common amd64 and arm64 cores.
const cacheLineSize = 64

type paddedCounter struct {
	count int
	_     [cacheLineSize - 8]byte
}

// CountSharedPadded is CountShared with every counter slot padded to its
// own cache line, so that the goroutines do not contend on shared lines.
func CountSharedPadded(g Grid, threads int) (int, error) {
	chunks, err := Partition(g, threads)
	if err != nil {
		return 0, err
	}
	counters := make([]paddedCounter, len(chunks))
	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for i, chunk := range chunks {
		go func() {
			defer wg.Done()
			slot := &counters[i]
			for _, row := range chunk {
				for _, v := range row {
					if v%2 != 0 {
						slot.count++
					}
				}
			}
		}()
	}
	wg.Wait()
	sum := 0
	for i := range counters {
		sum += counters[i].count
	}
	return sum, nil
}

package oddsum

import (
	"errors"
	"fmt"
)

// ErrInvalidPartition is returned when the rows of a grid cannot be divided
// into equally sized chunks, one per thread.
var ErrInvalidPartition = errors.New("oddsum: invalid partition")

// A PartitionError reports the row and thread counts that could not be
// partitioned. It matches ErrInvalidPartition with errors.Is.
type PartitionError struct {
	Rows    int
	Threads int
}

func (e *PartitionError) Error() string {
	switch {
	case e.Threads <= 0:
		return fmt.Sprintf("%v: thread count %d is not positive", ErrInvalidPartition, e.Threads)
	case e.Threads > e.Rows:
		return fmt.Sprintf("%v: %d threads exceed %d rows", ErrInvalidPartition, e.Threads, e.Rows)
	default:
		return fmt.Sprintf("%v: %d rows are not divisible by %d threads", ErrInvalidPartition, e.Rows, e.Threads)
	}
}

func (e *PartitionError) Unwrap() error {
	return ErrInvalidPartition
}

// ChunkSize returns the number of rows per chunk when rows rows are divided
// among threads threads. Zero rows can be divided among any positive number
// of threads and yield a chunk size of zero.
func ChunkSize(rows, threads int) (int, error) {
	if threads <= 0 || (rows > 0 && (threads > rows || rows%threads != 0)) {
		return 0, &PartitionError{Rows: rows, Threads: threads}
	}
	return rows / threads, nil
}

// Partition splits the rows of g into threads contiguous chunks of equal
// size. The chunks share memory with g. An empty grid yields no chunks.
func Partition(g Grid, threads int) ([]Grid, error) {
	size, err := ChunkSize(len(g), threads)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	chunks := make([]Grid, 0, threads)
	for low := 0; low < len(g); low += size {
		chunks = append(chunks, g[low:low+size:low+size])
	}
	return chunks, nil
}

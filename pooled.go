package oddsum

import (
	"fmt"

	"github.com/exascience/oddsum/pool"
)

type partial struct {
	seqNo int
	sum   int
}

// submission reports how many tasks the submitting goroutine got into the
// pool, and why it stopped early, if it did.
type submission struct {
	submitted int
	err       error
}

// PooledPartials splits the rows of g into threads chunks and counts them
// as tasks on p. The tasks are submitted in chunk order from a separate
// goroutine and deliver their partial sums over an unbuffered channel, in
// completion order. The returned slice holds the partial sums in
// submission order: element i is the count of chunk i.
//
// If p is closed before all tasks are submitted, PooledPartials waits for
// the tasks already submitted and returns an error wrapping pool.ErrClosed.
func PooledPartials(p *pool.Pool, g Grid, threads int) ([]int, error) {
	chunks, err := Partition(g, threads)
	if err != nil {
		return nil, err
	}
	results := make(chan partial)
	done := make(chan submission, 1)
	go func() {
		for seqNo, chunk := range chunks {
			err := p.TrySubmit(func() {
				sum := 0
				for _, row := range chunk {
					sum += CountRow(row)
				}
				results <- partial{seqNo, sum}
			})
			if err != nil {
				done <- submission{seqNo, err}
				return
			}
		}
		done <- submission{len(chunks), nil}
	}()
	partials := make([]int, len(chunks))
	expected, received := len(chunks), 0
	pending := done
	for received < expected {
		select {
		case r := <-results:
			partials[r.seqNo] = r.sum
			received++
		case s := <-pending:
			expected, err = s.submitted, s.err
			pending = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("oddsum: %d of %d chunks submitted: %w", expected, len(chunks), err)
	}
	return partials, nil
}

// CountPooled counts the odd elements of g on the reusable worker pool p,
// using threads equally sized chunks of rows. See PooledPartials.
func CountPooled(p *pool.Pool, g Grid, threads int) (int, error) {
	partials, err := PooledPartials(p, g, threads)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, s := range partials {
		sum += s
	}
	return sum, nil
}

package pipeline

import (
	"context"
)

// A Source represents an object that can generate data batches for
// pipelines.
type Source interface {
	// Err returns an error value or nil.
	Err() error

	// Prepare receives the pipeline context and returns the total
	// expected size of all data batches, or -1 if it is unknown.
	Prepare(ctx context.Context) (size int)

	// Fetch gets a data batch of at most the requested size and
	// returns the size it was actually able to fetch. It returns 0
	// when the source is depleted.
	Fetch(size int) (fetched int)

	// Data returns the last fetched data batch.
	Data() any
}

// SliceSource is a Source whose batches are consecutive subslices of a
// slice. The batches share memory with the slice.
type SliceSource[T any] struct {
	slice []T
	index int
	data  []T
}

// NewSliceSource returns a Source that fetches batches of type []T from
// slice.
func NewSliceSource[T any](slice []T) *SliceSource[T] {
	return &SliceSource[T]{slice: slice}
}

// Err implements the Err method of the Source interface.
func (src *SliceSource[T]) Err() error {
	return nil
}

// Prepare implements the Prepare method of the Source interface.
func (src *SliceSource[T]) Prepare(_ context.Context) int {
	src.index = 0
	return len(src.slice)
}

// Fetch implements the Fetch method of the Source interface.
func (src *SliceSource[T]) Fetch(n int) (fetched int) {
	end := min(src.index+n, len(src.slice))
	if src.index >= end {
		src.data = nil
		return 0
	}
	src.data = src.slice[src.index:end]
	fetched = end - src.index
	src.index = end
	return
}

// Data implements the Data method of the Source interface.
func (src *SliceSource[T]) Data() any {
	return src.data
}

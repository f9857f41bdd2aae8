package pipeline

import (
	"sync"
	"sync/atomic"

	"github.com/exascience/oddsum/parallel"
)

// NewNode creates a node of the given kind, with the given filters.
//
// It is often more convenient to use one of Ord, Seq, or Par.
func NewNode(kind NodeKind, filters ...Filter) Node {
	switch kind {
	case Ordered, Sequential:
		return &seqnode{kind: kind, filterSet: filterSet{filters: filters}}
	case Parallel:
		return Par(filters...)
	default:
		panic("invalid NodeKind in pipeline.NewNode")
	}
}

// Receive creates a Filter that returns the given receiver and a nil
// finalizer.
func Receive(receive Receiver) Filter {
	return func(_ *Pipeline, _ NodeKind, _ *int) (Receiver, Finalizer) {
		return receive, nil
	}
}

// Finalize creates a filter that returns a nil receiver and the given
// finalizer.
func Finalize(finalize Finalizer) Filter {
	return func(_ *Pipeline, _ NodeKind, _ *int) (Receiver, Finalizer) {
		return nil, finalize
	}
}

// ReceiveAndFinalize creates a filter that returns the given receiver
// and finalizer.
func ReceiveAndFinalize(receive Receiver, finalize Finalizer) Filter {
	return func(_ *Pipeline, _ NodeKind, _ *int) (Receiver, Finalizer) {
		return receive, finalize
	}
}

/*
Flatten creates a filter that turns batches of type [][]T into batches
of type []T by concatenating the inner slices. The total size after
flattening is unknown in advance, so dataSize becomes -1.
*/
func Flatten[T any]() Filter {
	return func(_ *Pipeline, _ NodeKind, size *int) (Receiver, Finalizer) {
		*size = -1
		return func(_ int, data any) any {
			batch, _ := data.([][]T)
			n := 0
			for _, inner := range batch {
				n += len(inner)
			}
			flat := make([]T, 0, n)
			for _, inner := range batch {
				flat = append(flat, inner...)
			}
			return flat
		}, nil
	}
}

/*
Keep creates a filter that forwards only the elements of each []T batch
for which predicate returns true. The batches it receives are not
modified.
*/
func Keep[T any](predicate func(T) bool) Filter {
	return func(_ *Pipeline, _ NodeKind, size *int) (Receiver, Finalizer) {
		*size = -1
		return func(_ int, data any) any {
			batch, _ := data.([]T)
			var kept []T
			for _, v := range batch {
				if predicate(v) {
					kept = append(kept, v)
				}
			}
			return kept
		}, nil
	}
}

/*
Count creates a filter that sets the result pointer to the total number
of elements of all []T batches it sees. If the total size is already
known when the pipeline starts, Count uses it and adds no receiver.
*/
func Count[T any](result *int) Filter {
	return func(_ *Pipeline, kind NodeKind, size *int) (receiver Receiver, finalizer Finalizer) {
		switch {
		case *size >= 0:
			*result = *size
		case kind == Parallel:
			var res atomic.Int64
			receiver = func(_ int, data any) any {
				batch, _ := data.([]T)
				res.Add(int64(len(batch)))
				return data
			}
			finalizer = func() {
				*result = int(res.Load())
			}
		default:
			*result = 0
			receiver = func(_ int, data any) any {
				batch, _ := data.([]T)
				*result += len(batch)
				return data
			}
		}
		return
	}
}

// Sum creates a filter that sets the result pointer to the sum of all
// elements of all []T batches it sees.
func Sum[T parallel.Number](result *T) Filter {
	return func(_ *Pipeline, kind NodeKind, _ *int) (receiver Receiver, finalizer Finalizer) {
		sum := func(batch []T) (s T) {
			for _, v := range batch {
				s += v
			}
			return
		}
		switch kind {
		case Parallel:
			var mutex sync.Mutex
			var res T
			receiver = func(_ int, data any) any {
				batch, _ := data.([]T)
				s := sum(batch)
				mutex.Lock()
				res += s
				mutex.Unlock()
				return data
			}
			finalizer = func() {
				*result = res
			}
		default:
			*result = 0
			receiver = func(_ int, data any) any {
				batch, _ := data.([]T)
				*result += sum(batch)
				return data
			}
		}
		return
	}
}

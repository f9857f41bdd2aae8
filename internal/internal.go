// Package internal holds helpers shared by the parallel, sequential, and
// pool packages.
package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// ComputeNofBatches determines how many batches a range from low to high is
// split into. If n is 0, the default is 2 * runtime.GOMAXPROCS(0). The result
// never exceeds the size of the range, and is 1 for an empty range.
//
// ComputeNofBatches panics if high < low, or if n < 0.
func ComputeNofBatches(low, high, n int) (batches int) {
	size := high - low
	if size < 0 {
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	}
	switch {
	case n == 0:
		batches = 2 * runtime.GOMAXPROCS(0)
	case n > 0:
		batches = n
	default:
		panic(fmt.Sprintf("invalid number of batches: %v", n))
	}
	if size == 0 {
		return 1
	}
	return min(batches, size)
}

// Split returns the midpoint at which a range from low to high that is to be
// divided into n batches is cut in two, together with the number of batches
// on the left side. ok is false when the range should not be split further.
func Split(low, high, n int) (mid, half int, ok bool) {
	if n <= 1 {
		return high, n, false
	}
	batchSize := ((high - low - 1) / n) + 1
	half = n / 2
	mid = low + batchSize*half
	return mid, half, mid < high
}

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds the stack trace of the recovering goroutine to a recovered
// panic value, so that it is not lost when the panic is raised again in a
// different goroutine. Errors stay errors, and runtime errors stay runtime
// errors.
func WrapPanic(p any) any {
	if p == nil {
		return nil
	}
	s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
	if _, isError := p.(error); !isError {
		return s
	}
	err := errors.New(s)
	if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
		return runtimeError{err}
	}
	return err
}

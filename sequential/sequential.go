// Package sequential provides sequential implementations of the
// functions provided by the parallel package. This is useful for
// testing and debugging.
//
// The batches are visited in the same order and with the same bounds as
// in the parallel package, so results of non-associative reducers can be
// compared directly.
package sequential

import (
	"github.com/exascience/oddsum/internal"
	"github.com/exascience/oddsum/parallel"
)

// Do receives zero or more thunks and executes them sequentially,
// returning the left-most error value that is different from nil.
// All thunks are executed even if one of them fails.
func Do(thunks ...func() error) (err error) {
	for _, thunk := range thunks {
		if nerr := thunk(); err == nil {
			err = nerr
		}
	}
	return
}

// Range receives a range, a batch count n, and a range function f,
// divides the range into batches, and invokes the range function for
// each of these batches sequentially, covering the half-open interval
// from low to high, including low but excluding high.
//
// Range panics if high < low, or if n < 0.
func Range(low, high, n int, f func(low, high int) error) error {
	var recur func(int, int, int) error
	recur = func(low, high, n int) error {
		mid, half, ok := internal.Split(low, high, n)
		if !ok {
			return f(low, high)
		}
		err0 := recur(low, mid, half)
		err1 := recur(mid, high, n-half)
		if err0 != nil {
			return err0
		}
		return err1
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// RangeAnd receives a range, a batch count n, and a range predicate
// function f, divides the range into batches, and invokes the range
// predicate for each of these batches sequentially, combining all
// return values with the && operator.
func RangeAnd(low, high, n int, f func(low, high int) (bool, error)) (bool, error) {
	var recur func(int, int, int) (bool, error)
	recur = func(low, high, n int) (bool, error) {
		mid, half, ok := internal.Split(low, high, n)
		if !ok {
			return f(low, high)
		}
		b0, err0 := recur(low, mid, half)
		b1, err1 := recur(mid, high, n-half)
		if err0 != nil {
			return b0 && b1, err0
		}
		return b0 && b1, err1
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// RangeReduce receives a range, a batch count n, a range reducer reduce,
// and a pair reducer pair, divides the range into batches, and invokes
// the range reducer for each of these batches sequentially. The results
// are combined by repeated invocations of the pair reducer.
func RangeReduce[T any](
	low, high, n int,
	reduce func(low, high int) (T, error),
	pair func(x, y T) (T, error),
) (T, error) {
	var recur func(int, int, int) (T, error)
	recur = func(low, high, n int) (result T, err error) {
		mid, half, ok := internal.Split(low, high, n)
		if !ok {
			return reduce(low, high)
		}
		left, err0 := recur(low, mid, half)
		right, err1 := recur(mid, high, n-half)
		switch {
		case err0 != nil:
			err = err0
		case err1 != nil:
			err = err1
		default:
			result, err = pair(left, right)
		}
		return
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// RangeSum is a RangeReduce whose range reducer cannot fail and whose
// pair reducer is addition.
func RangeSum[T parallel.Number](low, high, n int, reduce func(low, high int) T) T {
	var recur func(int, int, int) T
	recur = func(low, high, n int) T {
		mid, half, ok := internal.Split(low, high, n)
		if !ok {
			return reduce(low, high)
		}
		return recur(low, mid, half) + recur(mid, high, n-half)
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

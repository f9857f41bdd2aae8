// Package parallel provides fork-join functions for expressing parallel
// algorithms over ranges of integers.
//
// All functions here divide their work recursively in two halves, run the
// right half in a new goroutine and the left half in the current one, and
// wait for both before combining the results. Panics in any of the
// goroutines are recovered and raised again in the invoking goroutine.
package parallel

import (
	"sync"

	"github.com/exascience/oddsum/internal"
)

// Number is the set of types that RangeSum can add up.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// fork runs right in a new goroutine and left in the current goroutine,
// and returns when both have terminated. If either panics, fork panics with
// the left-most recovered panic value.
func fork(left, right func()) {
	var p any
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer func() {
			p = internal.WrapPanic(recover())
			wg.Done()
		}()
		right()
	}()
	left()
	wg.Wait()
	if p != nil {
		panic(p)
	}
}

func firstErr(err0, err1 error) error {
	if err0 != nil {
		return err0
	}
	return err1
}

// Do receives zero or more thunks and executes them in parallel.
//
// Each thunk is invoked in its own goroutine, and Do returns only
// when all thunks have terminated, returning the left-most error
// value that is different from nil.
//
// If one or more thunks panic, the corresponding goroutines recover
// the panics, and Do eventually panics with the left-most
// recovered panic value.
func Do(thunks ...func() error) error {
	switch len(thunks) {
	case 0:
		return nil
	case 1:
		return thunks[0]()
	}
	var err0, err1 error
	half := len(thunks) / 2
	fork(
		func() { err0 = Do(thunks[:half]...) },
		func() { err1 = Do(thunks[half:]...) },
	)
	return firstErr(err0, err1)
}

// Range receives a range, a batch count n, and a range function f,
// divides the range into batches, and invokes the range function for
// each of these batches in parallel, covering the half-open interval
// from low to high, including low but excluding high.
//
// The batches are determined by dividing up the size of the range
// (high - low) by n. If n is 0, a reasonable default is used that
// takes runtime.GOMAXPROCS(0) into account.
//
// Range returns only when all range functions have terminated,
// returning the left-most error value that is different from nil.
//
// Range panics if high < low, or if n < 0.
func Range(low, high, n int, f func(low, high int) error) error {
	var recur func(int, int, int) error
	recur = func(low, high, n int) error {
		mid, half, ok := internal.Split(low, high, n)
		if !ok {
			return f(low, high)
		}
		var err0, err1 error
		fork(
			func() { err0 = recur(low, mid, half) },
			func() { err1 = recur(mid, high, n-half) },
		)
		return firstErr(err0, err1)
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// RangeAnd receives a range, a batch count n, and a range predicate
// function f, divides the range into batches, and invokes the range
// predicate for each of these batches in parallel.
//
// RangeAnd returns only when all range predicates have terminated,
// combining all return values with the && operator. RangeAnd also
// returns the left-most error value that is different from nil as a
// second return value.
//
// RangeAnd panics if high < low, or if n < 0.
func RangeAnd(low, high, n int, f func(low, high int) (bool, error)) (bool, error) {
	var recur func(int, int, int) (bool, error)
	recur = func(low, high, n int) (bool, error) {
		mid, half, ok := internal.Split(low, high, n)
		if !ok {
			return f(low, high)
		}
		var b0, b1 bool
		var err0, err1 error
		fork(
			func() { b0, err0 = recur(low, mid, half) },
			func() { b1, err1 = recur(mid, high, n-half) },
		)
		return b0 && b1, firstErr(err0, err1)
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// RangeReduce receives a range, a batch count n, a range reducer reduce,
// and a pair reducer pair, divides the range into batches, and invokes
// the range reducer for each of these batches in parallel. The results
// of the range reducer invocations are then combined by repeated
// invocations of the pair reducer.
//
// The pair reducer is only invoked when both of its operands were
// computed without error. RangeReduce returns the left-most error value
// that is different from nil.
//
// RangeReduce panics if high < low, or if n < 0.
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
		var left, right T
		var err0, err1 error
		fork(
			func() { left, err0 = recur(low, mid, half) },
			func() { right, err1 = recur(mid, high, n-half) },
		)
		if err = firstErr(err0, err1); err != nil {
			return
		}
		return pair(left, right)
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// RangeSum is a RangeReduce whose range reducer cannot fail and whose
// pair reducer is addition.
func RangeSum[T Number](low, high, n int, reduce func(low, high int) T) T {
	var recur func(int, int, int) T
	recur = func(low, high, n int) T {
		mid, half, ok := internal.Split(low, high, n)
		if !ok {
			return reduce(low, high)
		}
		var left, right T
		fork(
			func() { left = recur(low, mid, half) },
			func() { right = recur(mid, high, n-half) },
		)
		return left + right
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

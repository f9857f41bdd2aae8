package pool_test

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/exascience/oddsum/pool"
)

func ExampleScope() {
	p := pool.New(2)
	defer p.Close()

	squares := make([]int, 5)
	s := p.Scope()
	for i := range squares {
		s.Go(func() { squares[i] = i * i })
	}
	s.Wait()
	fmt.Println(squares)

	// Output:
	// [0 1 4 9 16]
}

func TestDefaultSize(t *testing.T) {
	p := pool.New(0)
	defer p.Close()
	require.Equal(t, runtime.GOMAXPROCS(0), p.Size())
}

func TestSingleWorkerRunsInSubmissionOrder(t *testing.T) {
	p := pool.New(1)
	defer p.Close()

	var order []int
	s := p.Scope()
	for i := range 100 {
		s.Go(func() { order = append(order, i) })
	}
	s.Wait()

	expected := make([]int, 100)
	for i := range expected {
		expected[i] = i
	}
	if diff := cmp.Diff(expected, order); diff != "" {
		t.Errorf("dispatch order mismatch (-want +got):\n%s", diff)
	}
}

func TestReuseAcrossScopes(t *testing.T) {
	p := pool.New(4)
	defer p.Close()

	for round := range 10 {
		var sum atomic.Int64
		s := p.Scope()
		for i := range 1000 {
			s.Go(func() { sum.Add(int64(i)) })
		}
		s.Wait()
		require.EqualValues(t, 999*1000/2, sum.Load(), "round %d", round)
	}
}

func TestScopePanic(t *testing.T) {
	p := pool.New(2)
	defer p.Close()

	s := p.Scope()
	s.Go(func() {})
	s.Go(func() { panic("task failed") })
	require.Panics(t, s.Wait)

	// workers survive a panicking scoped task
	var ran atomic.Bool
	s = p.Scope()
	s.Go(func() { ran.Store(true) })
	s.Wait()
	require.True(t, ran.Load())
}

func TestClose(t *testing.T) {
	p := pool.New(3)
	var done atomic.Int32
	for range 30 {
		p.Submit(func() { done.Add(1) })
	}
	p.Close()
	require.EqualValues(t, 30, done.Load())

	p.Close()
	require.Panics(t, func() { p.Submit(func() {}) })
	require.Panics(t, func() { p.Scope().Go(func() {}) })
	require.ErrorIs(t, p.TrySubmit(func() { t.Error("task ran on closed pool") }), pool.ErrClosed)
}

package sequential_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/exascience/oddsum/sequential"
)

func ExampleRangeSum() {
	odds := sequential.RangeSum(-5, 6, 3, func(low, high int) (n int) {
		for i := low; i < high; i++ {
			if i%2 != 0 {
				n++
			}
		}
		return
	})
	fmt.Println(odds)

	// Output:
	// 6
}

func TestRangeVisitsBatchesInOrder(t *testing.T) {
	var batches [][2]int
	err := sequential.Range(0, 10, 4, func(low, high int) error {
		batches = append(batches, [2]int{low, high})
		return nil
	})
	require.NoError(t, err)
	if diff := cmp.Diff([][2]int{{0, 3}, {3, 6}, {6, 8}, {8, 10}}, batches); diff != "" {
		t.Errorf("batches mismatch (-want +got):\n%s", diff)
	}
}

func TestDoRunsAllThunks(t *testing.T) {
	first := errors.New("first")
	ran := 0
	err := sequential.Do(
		func() error {
			ran++
			return nil
		},
		func() error {
			ran++
			return first
		},
		func() error {
			ran++
			return errors.New("second")
		},
	)
	require.ErrorIs(t, err, first)
	require.Equal(t, 3, ran)
}

func TestRangeAndReduce(t *testing.T) {
	ok, err := sequential.RangeAnd(0, 8, 0, func(low, _ int) (bool, error) {
		return low < 100, nil
	})
	require.NoError(t, err)
	require.True(t, ok)

	boom := errors.New("boom")
	_, err = sequential.RangeReduce(0, 8, 2,
		func(low, _ int) (int, error) {
			if low > 0 {
				return 0, boom
			}
			return 1, nil
		},
		func(x, y int) (int, error) { return x + y, nil },
	)
	require.ErrorIs(t, err, boom)
}

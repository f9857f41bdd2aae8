package oddsum_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/exascience/oddsum"
	"github.com/exascience/oddsum/pool"
)

func small() oddsum.Grid {
	return oddsum.Grid{
		{1, 2, 3, 4, 5, 6},
		{1, 2, 3, 4, 5, 6},
	}
}

func randomGrid(r *rand.Rand, rows, cols int) oddsum.Grid {
	g := make(oddsum.Grid, rows)
	for i := range g {
		g[i] = make([]int, cols)
		for j := range g[i] {
			g[i][j] = r.Intn(2001) - 1000
		}
	}
	return g
}

func withVariants(t *testing.T, f func(t *testing.T, v oddsum.Variant)) {
	p := pool.New(4)
	t.Cleanup(p.Close)
	for _, v := range oddsum.Variants(p) {
		t.Run(v.Name, func(t *testing.T) { f(t, v) })
	}
}

func TestSmallGrid(t *testing.T) {
	withVariants(t, func(t *testing.T, v oddsum.Variant) {
		count, err := v.Count(small(), 2)
		require.NoError(t, err)
		require.Equal(t, 6, count)
	})
}

func TestEmptyGrid(t *testing.T) {
	withVariants(t, func(t *testing.T, v oddsum.Variant) {
		for _, threads := range []int{1, 4} {
			count, err := v.Count(oddsum.Grid{}, threads)
			require.NoError(t, err)
			require.Zero(t, count)
			count, err = v.Count(nil, threads)
			require.NoError(t, err)
			require.Zero(t, count)
		}
	})
}

func TestNoOddElements(t *testing.T) {
	g := oddsum.Grid{{0, 2, -4}, {6, 8, 10}, {-12, 14, 16}, {0, 0, 0}}
	withVariants(t, func(t *testing.T, v oddsum.Variant) {
		count, err := v.Count(g, 2)
		require.NoError(t, err)
		require.Zero(t, count)
	})
}

func TestNegativeOdd(t *testing.T) {
	g := oddsum.Grid{{-1, -2, -3}, {-5, -7, -8}}
	require.True(t, oddsum.IsOdd(-3))
	withVariants(t, func(t *testing.T, v oddsum.Variant) {
		count, err := v.Count(g, 2)
		require.NoError(t, err)
		require.Equal(t, 4, count)
	})
}

func TestVariantsAgree(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	grids := []oddsum.Grid{
		randomGrid(r, 12, 7),
		randomGrid(r, 60, 1),
		randomGrid(r, 24, 333),
		oddsum.Giant(48),
		// ragged rows
		{{1}, {1, 2, 3}, {}, {5, 7, 9, 11}, {2}, {3, 3}},
	}
	withVariants(t, func(t *testing.T, v oddsum.Variant) {
		for i, g := range grids {
			expected := oddsum.CountSerial(g)
			for _, threads := range []int{1, 2, 3, 6} {
				count, err := v.Count(g, threads)
				require.NoError(t, err, "grid %d, %d threads", i, threads)
				require.Equal(t, expected, count, "grid %d, %d threads", i, threads)
			}
		}
	})
}

func TestIdempotent(t *testing.T) {
	g := randomGrid(rand.New(rand.NewSource(7)), 16, 16)
	withVariants(t, func(t *testing.T, v oddsum.Variant) {
		first, err := v.Count(g, 4)
		require.NoError(t, err)
		second, err := v.Count(g, 4)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

func TestInvalidPartition(t *testing.T) {
	g := small()
	withVariants(t, func(t *testing.T, v oddsum.Variant) {
		if !v.Chunked {
			t.Skip("variant does not partition rows")
		}
		for _, threads := range []int{-1, 0, 3, 4} {
			_, err := v.Count(g, threads)
			require.ErrorIs(t, err, oddsum.ErrInvalidPartition, "%d threads", threads)
			var pe *oddsum.PartitionError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, oddsum.PartitionError{Rows: 2, Threads: threads}, *pe)
		}
		// 5 rows over 2 threads would silently drop a row when truncating
		g5 := append(oddsum.Grid{{1}, {1}, {1}}, g...)
		_, err := v.Count(g5, 2)
		require.ErrorIs(t, err, oddsum.ErrInvalidPartition)
	})
}

func TestPartition(t *testing.T) {
	g := oddsum.Giant(6)
	chunks, err := oddsum.Partition(g, 3)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		require.Len(t, chunk, 2)
		require.Equal(t, 2*i, chunk[0][0])
		require.Equal(t, 2*i+1, chunk[1][0])
	}

	chunks, err = oddsum.Partition(nil, 8)
	require.NoError(t, err)
	require.Empty(t, chunks)

	_, err = oddsum.Partition(nil, 0)
	require.ErrorIs(t, err, oddsum.ErrInvalidPartition)

	_, err = oddsum.ChunkSize(7, 8)
	require.EqualError(t, err, "oddsum: invalid partition: 8 threads exceed 7 rows")
	_, err = oddsum.ChunkSize(7, 2)
	require.EqualError(t, err, "oddsum: invalid partition: 7 rows are not divisible by 2 threads")
	_, err = oddsum.ChunkSize(7, 0)
	require.EqualError(t, err, "oddsum: invalid partition: thread count 0 is not positive")
}

func TestPooledPartialsInSubmissionOrder(t *testing.T) {
	for _, size := range []int{1, 2, 8} {
		p := pool.New(size)
		g := oddsum.Giant(12)
		for _, threads := range []int{1, 3, 4, 12} {
			partials, err := oddsum.PooledPartials(p, g, threads)
			require.NoError(t, err)

			chunks, err := oddsum.Partition(g, threads)
			require.NoError(t, err)
			expected := make([]int, len(chunks))
			for i, chunk := range chunks {
				expected[i] = oddsum.CountSerial(chunk)
			}
			if diff := cmp.Diff(expected, partials); diff != "" {
				t.Errorf("pool %d, %d threads (-want +got):\n%s", size, threads, diff)
			}
		}
		p.Close()
	}
}

func TestPooledOnClosedPool(t *testing.T) {
	p := pool.New(2)
	p.Close()
	g := oddsum.Giant(4)

	n, err := oddsum.CountPooled(p, g, 2)
	require.ErrorIs(t, err, pool.ErrClosed)
	require.Zero(t, n)

	partials, err := oddsum.PooledPartials(p, g, 4)
	require.ErrorIs(t, err, pool.ErrClosed)
	require.Nil(t, partials)

	_, err = oddsum.CountPooled(p, g, 3)
	require.ErrorIs(t, err, oddsum.ErrInvalidPartition)
}

func TestLookup(t *testing.T) {
	variants := oddsum.Variants(nil)
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	require.Equal(t, []string{
		"serial", "functional", "shared", "shared-padded",
		"message", "pooled", "rows", "flat",
	}, names)

	v, err := oddsum.Lookup(variants, "flat")
	require.NoError(t, err)
	require.Equal(t, "flat", v.Name)

	_, err = oddsum.Lookup(variants, "parallel-iter")
	require.EqualError(t, err, `oddsum: unknown variant "parallel-iter"`)
}

func TestGrid(t *testing.T) {
	g := small()
	require.Equal(t, 2, g.Rows())
	require.Equal(t, 12, g.Len())
	require.True(t, g.Rectangular())
	require.False(t, oddsum.Grid{{1, 2}, {1, 2}, {1}}.Rectangular())
	require.True(t, oddsum.Grid{}.Rectangular())

	giant := oddsum.Giant(4)
	require.Equal(t, oddsum.Grid{{0, 0, 0, 0}, {1, 1, 1, 1}, {2, 2, 2, 2}, {3, 3, 3, 3}}, giant)
	require.Equal(t, 8, oddsum.CountSerial(giant))
}

func TestDense(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1.9, -2.5, 3, -3.7, 4, 5.2})
	g := oddsum.FromDense(m)
	require.Equal(t, oddsum.Grid{{1, -2, 3}, {-3, 4, 5}}, g)
	require.Equal(t, 4, oddsum.CountRows(g))

	back := g.Dense()
	require.True(t, mat.Equal(back, mat.NewDense(2, 3, []float64{1, -2, 3, -3, 4, 5})))

	require.PanicsWithValue(t, "oddsum: Dense of empty grid", func() { oddsum.Grid{}.Dense() })
	require.PanicsWithValue(t, "oddsum: Dense of empty grid", func() { oddsum.Grid{{}}.Dense() })
}

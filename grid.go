package oddsum

import (
	"gonum.org/v1/gonum/mat"

	"github.com/exascience/oddsum/parallel"
)

// A Grid is a sequence of rows of integers. Rows are expected, but not
// required, to have equal length. A Grid must not be modified while it is
// being counted.
type Grid [][]int

// IsOdd reports whether v is odd. The remainder truncates toward zero, so
// negative odd numbers are odd as well.
func IsOdd(v int) bool {
	return v%2 != 0
}

// CountRow returns the number of odd elements in row.
func CountRow(row []int) (count int) {
	for _, v := range row {
		if v%2 != 0 {
			count++
		}
	}
	return
}

// Rows returns the number of rows of g.
func (g Grid) Rows() int {
	return len(g)
}

// Len returns the total number of elements of g.
func (g Grid) Len() (n int) {
	for _, row := range g {
		n += len(row)
	}
	return
}

// Rectangular reports whether all rows of g have the same length. The rows
// are compared in parallel.
func (g Grid) Rectangular() bool {
	if len(g) < 2 {
		return true
	}
	cols := len(g[0])
	ok, _ := parallel.RangeAnd(1, len(g), 0, func(low, high int) (bool, error) {
		for _, row := range g[low:high] {
			if len(row) != cols {
				return false, nil
			}
		}
		return true, nil
	})
	return ok
}

// Giant returns the n×n grid in which every element of row i equals i,
// which is the input used by the benchmarks.
func Giant(n int) Grid {
	g := make(Grid, n)
	for i := range g {
		row := make([]int, n)
		for j := range row {
			row[j] = i
		}
		g[i] = row
	}
	return g
}

// FromDense returns a grid with the contents of m, truncating every element
// toward zero.
func FromDense(m mat.Matrix) Grid {
	rows, cols := m.Dims()
	g := make(Grid, rows)
	for i := range g {
		row := make([]int, cols)
		for j := range row {
			row[j] = int(m.At(i, j))
		}
		g[i] = row
	}
	return g
}

// Dense returns the contents of g as a dense matrix. g must be rectangular
// and non-empty. Dense panics if g has no rows or its first row is empty.
func (g Grid) Dense() *mat.Dense {
	if len(g) == 0 || len(g[0]) == 0 {
		panic("oddsum: Dense of empty grid")
	}
	rows, cols := len(g), len(g[0])
	data := make([]float64, 0, rows*cols)
	for _, row := range g {
		for _, v := range row {
			data = append(data, float64(v))
		}
	}
	return mat.NewDense(rows, cols, data)
}

package oddsum

import (
	"github.com/exascience/oddsum/parallel"
	"github.com/exascience/oddsum/pipeline"
)

// CountRows counts the odd elements of g with a parallel reduction over its
// rows. The rows are divided into a default number of batches, every batch
// counts its rows, and the batch counts are added up pairwise.
func CountRows(g Grid) int {
	return parallel.RangeSum(0, len(g), 0, func(low, high int) (count int) {
		for _, row := range g[low:high] {
			count += CountRow(row)
		}
		return
	})
}

// CountFlat counts the odd elements of g on a parallel pipeline that
// flattens batches of rows into element streams, keeps the odd elements,
// and counts them.
func CountFlat(g Grid) int {
	return countPipeline(g, pipeline.Par)
}

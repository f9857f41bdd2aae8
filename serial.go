package oddsum

import (
	"github.com/exascience/oddsum/pipeline"
)

// CountSerial counts the odd elements of g with two nested loops.
func CountSerial(g Grid) (count int) {
	for _, row := range g {
		for _, v := range row {
			if v%2 != 0 {
				count++
			}
		}
	}
	return
}

// CountFunctional counts the odd elements of g by chaining transformations
// on a sequential pipeline: the rows are flattened, the odd elements are
// kept, and the remaining elements are counted.
func CountFunctional(g Grid) int {
	return countPipeline(g, pipeline.Seq)
}

func countPipeline(g Grid, node func(...pipeline.Filter) pipeline.Node) (count int) {
	var p pipeline.Pipeline
	p.Source(pipeline.NewSliceSource[[]int](g))
	p.Add(node(
		pipeline.Flatten[int](),
		pipeline.Keep(IsOdd),
		pipeline.Count[int](&count),
	))
	if err := p.Run(); err != nil {
		// none of the filters above sets an error
		panic(err)
	}
	return
}

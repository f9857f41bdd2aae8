package oddsum

import (
	"fmt"

	"github.com/exascience/oddsum/pool"
)

// A Variant is a named strategy for counting odd elements. Variants that
// are not Chunked ignore the thread count.
type Variant struct {
	Name    string
	Chunked bool
	Count   func(g Grid, threads int) (int, error)
}

func total(count func(Grid) int) func(Grid, int) (int, error) {
	return func(g Grid, _ int) (int, error) {
		return count(g), nil
	}
}

// Variants returns all counting strategies in a fixed order. The pooled
// variant runs on p, which must stay open while the variants are used.
func Variants(p *pool.Pool) []Variant {
	return []Variant{
		{Name: "serial", Count: total(CountSerial)},
		{Name: "functional", Count: total(CountFunctional)},
		{Name: "shared", Chunked: true, Count: CountShared},
		{Name: "shared-padded", Chunked: true, Count: CountSharedPadded},
		{Name: "message", Chunked: true, Count: CountMessage},
		{Name: "pooled", Chunked: true, Count: func(g Grid, threads int) (int, error) {
			return CountPooled(p, g, threads)
		}},
		{Name: "rows", Count: total(CountRows)},
		{Name: "flat", Count: total(CountFlat)},
	}
}

// Lookup returns the variant with the given name.
func Lookup(variants []Variant, name string) (Variant, error) {
	for _, v := range variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("oddsum: unknown variant %q", name)
}

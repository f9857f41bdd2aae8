package pipeline

import (
	"sync"
)

type parnode struct {
	filterSet
	waitGroup sync.WaitGroup
}

// Par creates a parallel node with the given filters. Each batch is
// processed in its own goroutine.
func Par(filters ...Filter) Node {
	return &parnode{filterSet: filterSet{filters: filters}}
}

// Implements the TryMerge method of the Node interface.
func (node *parnode) TryMerge(next Node) bool {
	if nxt, merge := next.(*parnode); merge {
		node.merge(&nxt.filterSet)
		return true
	}
	return false
}

// Implements the Begin method of the Node interface.
func (node *parnode) Begin(p *Pipeline, _ int, dataSize *int) bool {
	return node.begin(p, Parallel, dataSize)
}

// Implements the Feed method of the Node interface.
func (node *parnode) Feed(p *Pipeline, index int, seqNo int, data any) {
	node.waitGroup.Add(1)
	go func() {
		defer node.waitGroup.Done()
		if p.ctx.Err() == nil {
			feed(p, node.receivers, index, seqNo, data)
		}
	}()
}

// Implements the End method of the Node interface.
func (node *parnode) End() {
	node.waitGroup.Wait()
	node.finalize()
}

package pipeline

import (
	"runtime"
	"sync"
)

type lparnode struct {
	filterSet
	limit     int
	channel   chan dataBatch
	waitGroup sync.WaitGroup
}

// LimitedPar creates a parallel node with the given filters that uses
// at most limit goroutines at the same time. If limit is <= 0,
// runtime.GOMAXPROCS(0) is used instead. A limit of 1 yields a
// sequential node.
func LimitedPar(limit int, filters ...Filter) Node {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	if limit == 1 {
		return Seq(filters...)
	}
	return &lparnode{filterSet: filterSet{filters: filters}, limit: limit}
}

// Implements the TryMerge method of the Node interface.
func (node *lparnode) TryMerge(next Node) bool {
	if nxt, merge := next.(*lparnode); merge && (nxt.limit == node.limit) {
		node.merge(&nxt.filterSet)
		return true
	}
	return false
}

// Implements the Begin method of the Node interface.
func (node *lparnode) Begin(p *Pipeline, index int, dataSize *int) (keep bool) {
	if keep = node.begin(p, Parallel, dataSize); !keep {
		return
	}
	node.channel = make(chan dataBatch)
	node.waitGroup.Add(node.limit)
	for range node.limit {
		go func() {
			defer node.waitGroup.Done()
			for {
				select {
				case <-p.ctx.Done():
					return
				case batch, ok := <-node.channel:
					if !ok {
						return
					}
					feed(p, node.receivers, index, batch.seqNo, batch.data)
				}
			}
		}()
	}
	return
}

// Implements the Feed method of the Node interface.
func (node *lparnode) Feed(p *Pipeline, _ int, seqNo int, data any) {
	select {
	case <-p.ctx.Done():
	case node.channel <- dataBatch{seqNo, data}:
	}
}

// Implements the End method of the Node interface.
func (node *lparnode) End() {
	close(node.channel)
	node.waitGroup.Wait()
	node.finalize()
}

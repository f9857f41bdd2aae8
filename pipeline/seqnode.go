package pipeline

import (
	"sync"
)

type (
	dataBatch struct {
		seqNo int
		data  any
	}

	seqnode struct {
		filterSet
		kind      NodeKind
		channel   chan dataBatch
		waitGroup sync.WaitGroup
	}
)

// Ord creates an ordered node with the given filters.
func Ord(filters ...Filter) Node {
	return &seqnode{kind: Ordered, filterSet: filterSet{filters: filters}}
}

// Seq creates a sequential node with the given filters.
func Seq(filters ...Filter) Node {
	return &seqnode{kind: Sequential, filterSet: filterSet{filters: filters}}
}

// Implements the TryMerge method of the Node interface.
func (node *seqnode) TryMerge(next Node) bool {
	nxt, merge := next.(*seqnode)
	if !merge || len(nxt.filters) == 0 {
		return false
	}
	if nxt.kind == Ordered {
		node.kind = Ordered
	}
	node.merge(&nxt.filterSet)
	return true
}

// Implements the Begin method of the Node interface.
func (node *seqnode) Begin(p *Pipeline, index int, dataSize *int) (keep bool) {
	if keep = node.begin(p, node.kind, dataSize); !keep {
		return
	}
	node.channel = make(chan dataBatch)
	node.waitGroup.Add(1)
	switch node.kind {
	case Sequential:
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
	case Ordered:
		go func() {
			defer node.waitGroup.Done()
			stash := make(map[int]any)
			run := 0
			for {
				select {
				case <-p.ctx.Done():
					return
				case batch, ok := <-node.channel:
					switch {
					case !ok:
						return
					case batch.seqNo < run:
						panic("invalid receive order in an ordered pipeline node")
					case batch.seqNo > run:
						stash[batch.seqNo] = batch.data
						continue
					}
					feed(p, node.receivers, index, batch.seqNo, batch.data)
					for run++; p.ctx.Err() == nil; run++ {
						data, ok := stash[run]
						if !ok {
							break
						}
						delete(stash, run)
						feed(p, node.receivers, index, run, data)
					}
				}
			}
		}()
	default:
		panic("invalid NodeKind in a sequential pipeline node")
	}
	return
}

// Implements the Feed method of the Node interface.
func (node *seqnode) Feed(p *Pipeline, _ int, seqNo int, data any) {
	select {
	case <-p.ctx.Done():
	case node.channel <- dataBatch{seqNo, data}:
	}
}

// Implements the End method of the Node interface.
func (node *seqnode) End() {
	close(node.channel)
	node.waitGroup.Wait()
	node.finalize()
}

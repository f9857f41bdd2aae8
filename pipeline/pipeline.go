/*
Package pipeline provides means to construct and execute parallel
pipelines.

A Pipeline feeds batches of data through several functions that can be
specified to be executed in encounter order, in arbitrary sequential
order, or in parallel. Ordered, sequential, or parallel stages can
arbitrarily alternate.

A Pipeline consists of a Source object, and several Node objects.
NewSliceSource turns any slice into a Source; other kinds of Source
objects can be added by user programs.

Node objects consist of filters, which are pairs of receiver and
finalizer functions. Each batch is passed to each receiver function,
which can transform the batch for the next receiver function in the
pipeline. Each finalizer function is called once when all batches have
been passed through all receiver functions.

Pipelines do not have an explicit representation for sinks. Instead,
filters such as Count and Sum use side effects to generate results.

Pipelines also support cancelation by way of the context package of
Go's standard library.
*/
package pipeline

import (
	"context"
	"runtime"
	"sync"
)

type (
	/*
	  A Node object represents a sequence of filters which are together
	  executed either in encounter order, in arbitrary sequential order,
	  or in parallel.

	  The methods of this interface are called by pipelines, not by user
	  programs. User programs create nodes with Ord, Seq, Par, or
	  LimitedPar.
	*/
	Node interface {
		// TryMerge tries to append the filters of node to the filters
		// of the current node, which succeeds if both nodes are of
		// compatible kinds.
		TryMerge(node Node) (merged bool)

		// Begin informs this node that the pipeline is going to start
		// to feed batches of data to it. dataSize is the expected total
		// size of all batches, or negative if unknown, and may be
		// modified by the filters of this node. Begin returns false if
		// the node has no receivers and no finalizers, in which case it
		// is dropped from the pipeline.
		Begin(p *Pipeline, index int, dataSize *int) (keep bool)

		// Feed is called for each batch of data, together with the
		// sequence number of the batch in encounter order. After the
		// batch has passed through all receivers of this node, the node
		// must call p.FeedForward with the same index and sequence
		// number, even when the batch has become empty.
		Feed(p *Pipeline, index int, seqNo int, data any)

		// End is called after all batches have been passed to Feed. It
		// waits for outstanding batches and calls the finalizers.
		End()
	}

	/*
	  A Pipeline is a parallel pipeline that can feed batches of data
	  fetched from a source through several nodes that are ordered,
	  sequential, or parallel.

	  The zero Pipeline is valid and empty.

	  A Pipeline must not be copied after first use.
	*/
	Pipeline struct {
		mutex      sync.RWMutex
		err        error
		ctx        context.Context
		cancel     context.CancelFunc
		source     Source
		nodes      []Node
		nofBatches int
	}
)

/*
Err sets or gets an error value for this pipeline.

If err is nil, Err returns the current error value for this pipeline.

If err is not nil, Err attempts to set a new error value for this
pipeline, unless it already has a non-nil error value. If the attempt
is successful, err is returned and Err also cancels the pipeline. If
the attempt is not successful, the current error value for this
pipeline is returned instead.

Err is safe to be invoked from different goroutines.
*/
func (p *Pipeline) Err(err error) error {
	if err == nil {
		p.mutex.RLock()
		defer p.mutex.RUnlock()
		return p.err
	}
	p.mutex.Lock()
	if p.err != nil {
		err = p.err
		p.mutex.Unlock()
		return err
	}
	p.err = err
	p.mutex.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	return err
}

// Context returns this pipeline's context.
func (p *Pipeline) Context() context.Context {
	return p.ctx
}

// Cancel calls the cancel function of this pipeline's context.
func (p *Pipeline) Cancel() {
	if p.cancel != nil {
		p.cancel()
	}
}

// Source sets the data source for this pipeline. Only the last call to
// Source before Run is effective.
func (p *Pipeline) Source(source Source) {
	p.source = source
}

// Add appends nodes to the end of this pipeline, merging adjacent
// nodes of compatible kinds.
func (p *Pipeline) Add(nodes ...Node) {
	for _, node := range nodes {
		if l := len(p.nodes); (l == 0) || !p.nodes[l-1].TryMerge(node) {
			p.nodes = append(p.nodes, node)
		}
	}
}

/*
NofBatches sets or gets the number of batches that are created from
the data source for this pipeline, if the expected total size of the
data source is known.

If user programs do not call NofBatches, or call it with a value < 1,
then the pipeline chooses 2 * runtime.GOMAXPROCS(0).

If the expected total size of the data source is unknown, the pipeline
starts with a small batch size and increases it for every subsequent
batch.
*/
func (p *Pipeline) NofBatches(n int) int {
	if n >= 1 {
		p.nofBatches = n
	} else if p.nofBatches < 1 {
		p.nofBatches = 2 * runtime.GOMAXPROCS(0)
	}
	return p.nofBatches
}

const (
	batchInc     = 1024
	maxBatchSize = 0x2000000
)

func nextBatchSize(batchSize int) int {
	return min(batchSize+batchInc, maxBatchSize)
}

/*
RunWithContext initiates pipeline execution.

It expects a context and its cancel function, for example from
context.WithCancel(context.Background()). The caller is responsible for
calling cancel at least once.

RunWithContext prepares the data source, tells each node that batches
are going to be sent to them by calling Begin, and then fetches
batches from the data source and sends them to the nodes. Once the
data source is depleted, or the context is canceled, the nodes are
informed that the end of the data source has been reached.
*/
func (p *Pipeline) RunWithContext(ctx context.Context, cancel context.CancelFunc) {
	if p.Err(nil) != nil {
		return
	}
	p.ctx, p.cancel = ctx, cancel
	if p.source == nil {
		p.source = NewSliceSource[struct{}](nil)
	}
	dataSize := p.source.Prepare(p.ctx)
	filteredSize := dataSize
	for index := 0; index < len(p.nodes); {
		if p.nodes[index].Begin(p, index, &filteredSize) {
			index++
		} else {
			p.nodes = append(p.nodes[:index], p.nodes[index+1:]...)
		}
	}
	if len(p.nodes) == 0 {
		return
	}
	defer func() {
		for _, node := range p.nodes {
			node.End()
		}
	}()
	batchSize, grow := batchInc, true
	if dataSize >= 0 {
		batchSize, grow = max(((dataSize-1)/p.NofBatches(0))+1, 1), false
	}
	for seqNo := 0; p.source.Fetch(batchSize) > 0; seqNo++ {
		if p.ctx.Err() != nil {
			return
		}
		p.nodes[0].Feed(p, 0, seqNo, p.source.Data())
		if p.Err(p.source.Err()) != nil {
			return
		}
		if grow {
			batchSize = nextBatchSize(batchSize)
		}
	}
}

// Run initiates pipeline execution with a fresh cancelable context, and
// returns the error value of the pipeline once it is done.
func (p *Pipeline) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.RunWithContext(ctx, cancel)
	return p.Err(nil)
}

/*
FeedForward must be called in the Feed method of a node to forward a
potentially modified data batch to the next node in the current
pipeline, with the index and seqNo received by Feed.
*/
func (p *Pipeline) FeedForward(index int, seqNo int, data any) {
	if index++; index < len(p.nodes) {
		p.nodes[index].Feed(p, index, seqNo, data)
	}
}

package pipeline

// A NodeKind represents the different kinds of nodes.
type NodeKind int

const (
	// Ordered nodes receive batches in encounter order.
	Ordered NodeKind = iota

	// Sequential nodes receive batches in arbitrary sequential order.
	Sequential

	// Parallel nodes receive batches in parallel.
	Parallel
)

func (kind NodeKind) String() string {
	switch kind {
	case Ordered:
		return "ordered"
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	default:
		return "invalid"
	}
}

/*
A Filter is a function that returns a Receiver and a Finalizer to be
added to a node. It receives the pipeline, the kind of node it will be
added to, and the expected total data size that the receiver will be
asked to process.

The dataSize parameter is either non-negative, in which case it is the
expected total size of all batches that will be passed to this
filter's receiver, or negative if the size is unknown. A filter that
changes the size of the batches it forwards must update dataSize for
subsequent filters.

Either the receiver or the finalizer or both can be nil, in which case
they are not added to the node.
*/
type Filter func(pipeline *Pipeline, kind NodeKind, dataSize *int) (Receiver, Finalizer)

// A Receiver is called for every data batch, and returns a
// potentially modified data batch.
type Receiver func(seqNo int, data any) (filteredData any)

// A Finalizer is called once after the corresponding receiver has
// been called for all data batches in the current pipeline.
type Finalizer func()

// ComposeFilters calls the given filters in order and collects the
// non-nil receivers and finalizers they return. It is used in Node
// implementations.
func ComposeFilters(pipeline *Pipeline, kind NodeKind, dataSize *int, filters []Filter) (receivers []Receiver, finalizers []Finalizer) {
	for _, filter := range filters {
		receiver, finalizer := filter(pipeline, kind, dataSize)
		if receiver != nil {
			receivers = append(receivers, receiver)
		}
		if finalizer != nil {
			finalizers = append(finalizers, finalizer)
		}
	}
	return
}

func feed(p *Pipeline, receivers []Receiver, index int, seqNo int, data any) {
	for _, receive := range receivers {
		data = receive(seqNo, data)
	}
	p.FeedForward(index, seqNo, data)
}

// filterSet is embedded by all node implementations.
type filterSet struct {
	filters    []Filter
	receivers  []Receiver
	finalizers []Finalizer
}

func (fs *filterSet) merge(other *filterSet) {
	fs.filters = append(fs.filters, other.filters...)
}

func (fs *filterSet) begin(p *Pipeline, kind NodeKind, dataSize *int) bool {
	fs.receivers, fs.finalizers = ComposeFilters(p, kind, dataSize, fs.filters)
	fs.filters = nil
	return (len(fs.receivers) > 0) || (len(fs.finalizers) > 0)
}

func (fs *filterSet) finalize() {
	for _, finalize := range fs.finalizers {
		finalize()
	}
	fs.receivers = nil
	fs.finalizers = nil
}

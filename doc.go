// Package oddsum compares strategies for counting the odd integers in a
// two-dimensional grid. Every strategy computes the same number; they
// differ only in how the work is spread over goroutines and how partial
// results find their way back to the caller.
//
// CountSerial and CountFunctional are sequential. CountShared lets every
// goroutine increment its own slot of a shared counters slice, which is
// race-free because the slots are disjoint, but suffers from false
// sharing; CountSharedPadded removes the false sharing. CountMessage lets
// every goroutine return a private partial sum over a channel. CountPooled
// does the same on a reusable worker pool. CountRows and CountFlat are
// data-parallel, based on a parallel reduction and a parallel pipeline
// respectively.
//
// The chunked variants split the rows of a grid into equally sized
// contiguous chunks, one per goroutine, and reject thread counts that do
// not allow this with ErrInvalidPartition rather than dropping rows.
//
// oddsum provides the following subpackages:
//
// oddsum/parallel provides fork-join functions for executing thunks,
// predicates, and reducers over ranges in parallel.
//
// oddsum/sequential provides sequential implementations of all functions
// from oddsum/parallel, for testing and debugging purposes.
//
// oddsum/pipeline provides functions and data structures to construct and
// execute parallel pipelines.
//
// oddsum/pool provides a reusable fixed-size worker pool.
//
// The command oddbench times all strategies against each other.
package oddsum

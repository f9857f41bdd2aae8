/*
Package pool provides a reusable, fixed-size pool of worker goroutines.

Tasks are submitted to a bounded first-in, first-out work queue and are
picked up by the workers in submission order. Completion order is
arbitrary. Results are not part of the pool: tasks communicate them
through channels or through memory they exclusively own.

A Scope groups tasks submitted to a pool so that they can be waited for
together, which gives fork-join semantics on top of long-lived workers.
*/
package pool

import (
	"errors"
	"runtime"
	"sync"

	"github.com/exascience/oddsum/internal"
)

// A Pool is a fixed-size set of worker goroutines fed from a bounded
// work queue.
//
// The zero Pool is not valid; use New.
type Pool struct {
	mutex     sync.RWMutex
	closed    bool
	size      int
	queue     chan func()
	waitGroup sync.WaitGroup
}

// New starts a pool with size workers and a work queue of the same
// capacity. If size is <= 0, runtime.GOMAXPROCS(0) is used instead.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	p := &Pool{size: size, queue: make(chan func(), size)}
	p.waitGroup.Add(size)
	for range size {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.waitGroup.Done()
	for task := range p.queue {
		task()
	}
}

// Size returns the number of workers of this pool.
func (p *Pool) Size() int {
	return p.size
}

// ErrClosed is returned by TrySubmit when the pool is closed.
var ErrClosed = errors.New("pool: submit on closed pool")

// TrySubmit enqueues task, blocking while the work queue is full. It
// returns ErrClosed if the pool is closed, in which case task is not run.
// A task that panics terminates the program, unless it is submitted
// through a Scope.
func (p *Pool) TrySubmit(task func()) error {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if p.closed {
		return ErrClosed
	}
	p.queue <- task
	return nil
}

// Submit is TrySubmit, but panics if the pool is closed.
func (p *Pool) Submit(task func()) {
	if err := p.TrySubmit(task); err != nil {
		panic(err)
	}
}

// Close stops accepting tasks, lets the workers drain the queue, and
// waits for them to terminate. Close is idempotent.
func (p *Pool) Close() {
	p.mutex.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mutex.Unlock()
	p.waitGroup.Wait()
}

// A Scope tracks tasks submitted to a pool so that they can be waited
// for together.
type Scope struct {
	pool      *Pool
	waitGroup sync.WaitGroup
	once      sync.Once
	panicVal  any
}

// Scope returns a new, empty scope for this pool.
func (p *Pool) Scope() *Scope {
	return &Scope{pool: p}
}

// Go submits task to the pool of this scope. Panics in task are
// recovered and raised again by Wait.
func (s *Scope) Go(task func()) {
	s.waitGroup.Add(1)
	submitted := false
	defer func() {
		if !submitted {
			s.waitGroup.Done()
		}
	}()
	s.pool.Submit(func() {
		defer func() {
			if p := recover(); p != nil {
				wrapped := internal.WrapPanic(p)
				s.once.Do(func() { s.panicVal = wrapped })
			}
			s.waitGroup.Done()
		}()
		task()
	})
	submitted = true
}

// Wait returns when all tasks submitted through this scope have
// terminated. If any of them panicked, Wait panics with the first
// recovered panic value.
func (s *Scope) Wait() {
	s.waitGroup.Wait()
	if s.panicVal != nil {
		panic(s.panicVal)
	}
}

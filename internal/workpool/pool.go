// Package workpool provides a small bounded goroutine pool for running
// independent solves concurrently. A batch of scenario files, each with
// disjoint variables and constraints, can be solved in parallel because
// distinct Solver/IncSolver instances never share state; workpool is
// just the plumbing that bounds how many run at once and reports each
// task's outcome back to the caller.
package workpool

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// ErrPoolShutdown is returned when trying to submit tasks to a shut down
// pool.
var ErrPoolShutdown = fmt.Errorf("workpool: pool has been shut down")

// Result pairs a submitted task's label (the scenario path, in
// batch.go's case) with the error it returned, or nil on success.
type Result struct {
	Label string
	Err   error
}

type task struct {
	label string
	fn    func() error
}

// Pool manages a fixed number of goroutines draining a task queue and
// publishing each task's Result on a shared channel. If maxWorkers is 0
// or negative, NewPool defaults to runtime.NumCPU(). Results() buffers
// only 2*maxWorkers results and a worker blocks while it is full, so
// callers that submit more tasks than that must read Results() while
// submitting; Shutdown waits for those blocked workers too.
type Pool struct {
	maxWorkers   int
	taskChan     chan task
	results      chan Result
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// NewPool creates a pool and starts its workers.
func NewPool(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	p := &Pool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan task, maxWorkers*2),
		results:      make(chan Result, maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}

	for i := 0; i < maxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()

	for t := range p.taskChan {
		p.results <- Result{Label: t.label, Err: t.fn()}
	}
}

// Submit enqueues fn under label, blocking until a slot is free, ctx is
// done, or the pool is shut down. fn's return value is later delivered
// on Results() tagged with label; Submit itself only reports queueing
// failures (a full queue past ctx's deadline, or a shut-down pool).
func (p *Pool) Submit(ctx context.Context, label string, fn func() error) error {
	select {
	case <-p.shutdownChan:
		return ErrPoolShutdown
	default:
	}
	select {
	case p.taskChan <- task{label: label, fn: fn}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.shutdownChan:
		return ErrPoolShutdown
	}
}

// Results returns the channel every submitted task's outcome is
// published on, in completion order (not submission order).
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Shutdown waits for queued and in-flight tasks to finish, then stops
// all workers and closes Results(). Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.shutdownChan)
		close(p.taskChan)
		p.workerWg.Wait()
		close(p.results)
	})
}

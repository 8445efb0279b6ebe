package concurrent

import (
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned by Submit after Close has been called.
var ErrPoolClosed = errors.New("submit on closed worker pool")

// TaskFunc is an opaque unit of work. The returned value and error are
// delivered to whoever waits on the task's handle.
type TaskFunc func() (interface{}, error)

// TaskHandle is the deferred result of a submitted task. The result (or
// failure) is written exactly once by the executing worker and can be
// retrieved any number of times afterwards.
type TaskHandle struct {
	done   chan struct{}
	result interface{}
	err    error
}

// Wait blocks until the task has executed and returns its result or the
// failure that occurred while executing it.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (h *TaskHandle) Wait() (interface{}, error) {
	<-h.done
	return h.result, h.err
}

// --------------------------------------------------------------------------
// Worker Pool
// --------------------------------------------------------------------------

// WorkerPool executes submitted tasks on a fixed number of persistent worker
// goroutines. The task queue is guarded by an exclusive section plus a
// condition variable; idle workers block on the condition until a submit
// wakes one of them.
type WorkerPool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []*queuedTask
	closed bool
	wg     sync.WaitGroup
}

type queuedTask struct {
	fn     TaskFunc
	handle *TaskHandle
}

// NewWorkerPool creates a pool with numWorkers persistent workers.
// A numWorkers value < 1 is raised to 1.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}

	p := &WorkerPool{}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}
	return p
}

// Submit wraps fn as a task, appends it to the queue and wakes one waiting
// worker. The returned handle resolves to fn's result, or to its error, or
// to an error describing a panic raised inside fn.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (p *WorkerPool) Submit(fn TaskFunc) (*TaskHandle, error) {
	handle := &TaskHandle{done: make(chan struct{})}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	p.tasks = append(p.tasks, &queuedTask{fn: fn, handle: handle})
	p.mu.Unlock()

	p.cond.Signal()
	return handle, nil
}

// Close signals all workers to stop, lets them finish draining the queue and
// joins them. Tasks already queued are executed to completion; nothing is
// cancelled mid-flight. Close is idempotent.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.cond.Broadcast()
	p.wg.Wait()
}

// worker is the loop run by each persistent worker goroutine.
func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.tasks) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.tasks) == 0 && p.closed {
			p.mu.Unlock()
			return
		}
		task := p.tasks[0]
		p.tasks = p.tasks[1:]
		p.mu.Unlock()

		task.run()
	}
}

// run executes the task at most once and delivers the result exactly once.
// A panic inside the task is captured and surfaced through the handle; it
// never propagates into the worker's own execution path.
func (t *queuedTask) run() {
	defer close(t.handle.done)
	defer func() {
		if r := recover(); r != nil {
			t.handle.err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	t.handle.result, t.handle.err = t.fn()
}

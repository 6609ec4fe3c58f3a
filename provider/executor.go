package provider

import "sync"

// serialExecutor runs submitted tasks on a single goroutine in submission
// order, the shared worker queue that serializes packet processing and
// event emission.
type serialExecutor struct {
	mu     sync.Mutex
	tasks  chan func()
	closed bool
	done   chan struct{}
}

func newSerialExecutor(depth int) *serialExecutor {
	e := &serialExecutor{
		tasks: make(chan func(), depth),
		done:  make(chan struct{}),
	}
	go e.loop()
	return e
}

func (e *serialExecutor) loop() {
	defer close(e.done)
	for f := range e.tasks {
		f()
	}
}

// Execute enqueues f. After Shutdown it reports false and drops the task;
// late work against a torn-down provider is a no-op, not an error.
func (e *serialExecutor) Execute(f func()) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	e.tasks <- f
	return true
}

// Shutdown stops accepting tasks and waits for queued work to drain.
func (e *serialExecutor) Shutdown() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		<-e.done
		return
	}
	e.closed = true
	close(e.tasks)
	e.mu.Unlock()

	<-e.done
}

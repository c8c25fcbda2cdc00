package service

import (
	"context"
	"log/slog"
	"sync"
)

// Dispatcher runs deferred gateway work decoupled from the webhook
// response cycle. The webhook handler enqueues a task and replies
// immediately; a worker performs the actual API calls afterwards.
// Failures are logged and go nowhere else, there is no channel back to
// the original request.
type Dispatcher struct {
	tasks chan task
	wg    sync.WaitGroup
}

type task struct {
	name string
	fn   func(context.Context) error
}

func NewDispatcher(workers, queueSize int) *Dispatcher {
	d := &Dispatcher{
		tasks: make(chan task, queueSize),
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for t := range d.tasks {
		// Detached from the originating request on purpose: the webhook
		// has already been answered by the time this runs.
		if err := t.fn(context.Background()); err != nil {
			slog.Error("background task failed",
				slog.String("task", t.name),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Enqueue hands work to the workers. It blocks when the queue is full.
func (d *Dispatcher) Enqueue(name string, fn func(context.Context) error) {
	d.tasks <- task{name: name, fn: fn}
}

// Shutdown drains the queue and waits for in-flight tasks.
func (d *Dispatcher) Shutdown() {
	close(d.tasks)
	d.wg.Wait()
}

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns; the work itself happens on goroutines
// owned by the worker until ctx is cancelled or Stop is called. Stop blocks
// until those goroutines have exited and is safe to call on a worker that
// was never started.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go process(ctx)
//	}
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// Revalidator refreshes a live collection from its source of truth.
type Revalidator interface {
	Revalidate()
}

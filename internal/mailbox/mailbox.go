// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mailbox runs closures one at a time on a dedicated goroutine.
//
// A Mailbox gives a component actor semantics: every closure posted to it
// observes the effects of all closures posted before it, and no two run
// concurrently. State owned by the component is touched only from inside
// posted closures, so it needs no further locking.
package mailbox

import "sync"

// Mailbox is an unbounded FIFO of closures drained by a single goroutine.
// Posting never blocks, so closures may post follow-up work to their own
// mailbox.
type Mailbox struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// New starts a Mailbox goroutine. Close must be called to stop it.
func New() *Mailbox {
	m := &Mailbox{
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go m.run()
	return m
}

// Post enqueues fn and returns immediately. It reports false if the mailbox
// is closed, in which case fn never runs.
func (m *Mailbox) Post(fn func()) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, fn)
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
	return true
}

// Call enqueues fn and waits until it has run. It reports false if fn did
// not run because the mailbox closed first.
//
// Call must not be used from a closure running on the same mailbox.
func (m *Mailbox) Call(fn func()) bool {
	ran := make(chan struct{})
	if !m.Post(func() {
		fn()
		close(ran)
	}) {
		return false
	}

	select {
	case <-ran:
		return true
	case <-m.stopped:
		select {
		case <-ran:
			return true
		default:
			return false
		}
	}
}

// Close stops accepting closures. The closure currently running completes;
// queued ones are dropped. Close is idempotent and does not wait; use Done
// for that.
func (m *Mailbox) Close() {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.queue = nil
		m.mu.Unlock()
		close(m.quit)
	})
}

// Done is closed once the mailbox goroutine has exited.
func (m *Mailbox) Done() <-chan struct{} {
	return m.stopped
}

func (m *Mailbox) run() {
	defer close(m.stopped)

	for {
		select {
		case <-m.quit:
			return
		case <-m.wake:
		}

		for {
			fn, ok := m.next()
			if !ok {
				break
			}
			fn()
		}
	}
}

func (m *Mailbox) next() (func(), bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || len(m.queue) == 0 {
		return nil, false
	}

	fn := m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	return fn, true
}

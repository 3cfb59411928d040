// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package livesync

import "sync"

// FocusSignal is a FocusSource fired by the host when it regains focus.
// It is safe for concurrent use.
type FocusSignal struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

// NewFocusSignal returns a FocusSignal with no listeners.
func NewFocusSignal() *FocusSignal {
	return &FocusSignal{fns: make(map[int]func())}
}

// OnFocus registers fn and returns a function that unregisters it.
func (f *FocusSignal) OnFocus(fn func()) (cancel func()) {
	f.mu.Lock()
	f.next++
	id := f.next
	f.fns[id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.fns, id)
			f.mu.Unlock()
		})
	}
}

// Fire calls every registered listener.
func (f *FocusSignal) Fire() {
	f.mu.Lock()
	fns := make([]func(), 0, len(f.fns))
	for _, fn := range f.fns {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Listeners returns the number of registered listeners.
func (f *FocusSignal) Listeners() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fns)
}

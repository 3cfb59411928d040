// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broker

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/models"
)

// MemoryBroker delivers events synchronously to subscribers in this process.
type MemoryBroker struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[int64]map[uint64]Handler
	closed bool

	logger *logger.Logger
}

func NewMemoryBroker(log *logger.Logger) *MemoryBroker {
	return &MemoryBroker{
		subs:   make(map[int64]map[uint64]Handler),
		logger: log,
	}
}

func (b *MemoryBroker) Publish(_ context.Context, event models.ChangeEvent) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBrokerClosed
	}
	handlers := make([]Handler, 0, len(b.subs[event.Record.OwnerID]))
	for _, h := range b.subs[event.Record.OwnerID] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}

	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, ownerID int64, handler Handler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBrokerClosed
	}

	b.nextID++
	id := b.nextID
	if b.subs[ownerID] == nil {
		b.subs[ownerID] = make(map[uint64]Handler)
	}
	b.subs[ownerID][id] = handler

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() { b.remove(ownerID, id) })
	}

	stop := context.AfterFunc(ctx, unsubscribe)
	return func() {
		stop()
		unsubscribe()
	}, nil
}

func (b *MemoryBroker) remove(ownerID int64, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs[ownerID], id)
	if len(b.subs[ownerID]) == 0 {
		delete(b.subs, ownerID)
	}
}

// Close drops every subscription.
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.subs = make(map[int64]map[uint64]Handler)
	return nil
}

// subscribers reports how many handlers are registered for ownerID.
func (b *MemoryBroker) subscribers(ownerID int64) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[ownerID])
}

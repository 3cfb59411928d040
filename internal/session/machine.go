// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/mailbox"
	"github.com/MKhiriev/go-bookmarks/models"
)

// timer is the part of *time.Timer the machine needs.
type timer interface {
	Stop() bool
}

// Machine is the session state machine. All state transitions run on its
// mailbox; Snapshot may be read from any goroutine.
type Machine struct {
	auth     AuthCollaborator
	fallback time.Duration
	logger   *logger.Logger
	box      *mailbox.Mailbox

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	afterFunc func(d time.Duration, f func()) timer
	now       func() time.Time

	current atomic.Pointer[Snapshot]

	// owned by the mailbox goroutine
	state       State
	identity    *models.Identity
	epoch       uint64
	resolvedBy  resolver
	unsubscribe func()
	timer       timer
	closed      bool
	observers   mailbox.Observers[Snapshot]
	notifiers   mailbox.Observers[models.Notification]
}

// NewMachine creates a Machine in StateUnresolved. Call Start to resolve.
func NewMachine(auth AuthCollaborator, cfg config.ClientSession, log *logger.Logger) *Machine {
	fallback := cfg.FallbackTimeout
	if fallback <= 0 {
		fallback = config.DefaultFallbackTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Machine{
		auth:     auth,
		fallback: fallback,
		logger:   log.WithComponent("session"),
		box:      mailbox.New(),
		ctx:      ctx,
		cancel:   cancel,
		afterFunc: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
	m.current.Store(&Snapshot{State: StateUnresolved})
	return m
}

// Start enters StateResolving. Calling it again restarts resolution with a
// new epoch; results of the previous one are ignored.
func (m *Machine) Start() {
	m.box.Post(m.beginResolving)
}

// Snapshot returns the latest published state.
func (m *Machine) Snapshot() Snapshot {
	return *m.current.Load()
}

// OnChange registers fn for every published state. fn is called right away
// with the current state. Callbacks run on the machine goroutine and must
// not block. The returned function unregisters fn.
func (m *Machine) OnChange(fn func(Snapshot)) (cancel func()) {
	var id int
	registered := m.box.Call(func() {
		id = m.observers.Add(fn)
		fn(m.snapshot())
	})
	if !registered {
		return func() {}
	}
	return func() {
		m.box.Post(func() { m.observers.Remove(id) })
	}
}

// OnNotify registers fn for error notifications. Same rules as OnChange.
func (m *Machine) OnNotify(fn func(models.Notification)) (cancel func()) {
	var id int
	if !m.box.Call(func() { id = m.notifiers.Add(fn) }) {
		return func() {}
	}
	return func() {
		m.box.Post(func() { m.notifiers.Remove(id) })
	}
}

// SignIn asks the collaborator to sign in. A nil error does not mean the
// machine is authenticated; that is observed through OnChange.
func (m *Machine) SignIn(ctx context.Context, credentials models.User) error {
	return m.operation("sign in", m.auth.SignIn(ctx, credentials))
}

// Register asks the collaborator to create an account and sign into it.
func (m *Machine) Register(ctx context.Context, credentials models.User) error {
	return m.operation("register", m.auth.Register(ctx, credentials))
}

// SignOut asks the collaborator to sign out.
func (m *Machine) SignOut(ctx context.Context) error {
	return m.operation("sign out", m.auth.SignOut(ctx))
}

// Close unsubscribes from auth changes and disarms the fallback timer. It is
// safe to call more than once.
func (m *Machine) Close() {
	m.closeOnce.Do(func() {
		m.box.Call(func() {
			m.closed = true
			m.teardown()
			m.observers.Clear()
			m.notifiers.Clear()
		})
		m.cancel()
		m.box.Close()
		m.logger.Debug().Msg("session machine closed")
	})
}

func (m *Machine) operation(name string, err error) error {
	if err == nil {
		return nil
	}

	wrapped := fmt.Errorf("%w: %s: %w", ErrAuthOperationFailed, name, err)
	m.logger.Warn().Err(err).Str("operation", name).Msg("auth operation failed")
	m.box.Post(func() {
		m.notifiers.Notify(models.NewNotification(models.KindAuthOperationFailed, wrapped))
	})
	return wrapped
}

func (m *Machine) beginResolving() {
	if m.closed {
		return
	}

	m.teardown()
	m.epoch++
	epoch := m.epoch
	m.resolvedBy = resolvedByNone
	m.publish(StateResolving, nil)

	m.unsubscribe = m.auth.SubscribeAuthChanges(func(identity *models.Identity) {
		identity = cloneIdentity(identity)
		m.box.Post(func() { m.onAuthEvent(epoch, identity) })
	})
	m.timer = m.afterFunc(m.fallback, func() {
		m.box.Post(func() { m.onFallback(epoch) })
	})

	go func() {
		identity, err := m.auth.CurrentIdentity(m.ctx)
		identity = cloneIdentity(identity)
		m.box.Post(func() { m.onQueryResult(epoch, identity, err) })
	}()

	m.logger.Debug().Uint64("epoch", epoch).Dur("fallback", m.fallback).Msg("resolving session")
}

func (m *Machine) onAuthEvent(epoch uint64, identity *models.Identity) {
	if m.stale(epoch) {
		return
	}

	m.resolvedBy = resolvedByEvent
	m.disarm()
	m.resolve(identity)
}

func (m *Machine) onQueryResult(epoch uint64, identity *models.Identity, err error) {
	if m.stale(epoch) {
		return
	}

	if err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrAuthQueryFailed, err)
		m.logger.Warn().Err(err).Uint64("epoch", epoch).Msg("session query failed")
		m.notifiers.Notify(models.NewNotification(models.KindAuthQueryFailed, wrapped))
		return
	}

	switch m.resolvedBy {
	case resolvedByEvent, resolvedByQuery:
		m.logger.Debug().
			Str("resolved_by", m.resolvedBy.String()).
			Bool("consistent", sameSession(m.identity, identity)).
			Msg("late session query result ignored")
		return
	}

	m.resolvedBy = resolvedByQuery
	m.disarm()
	m.resolve(identity)
}

func (m *Machine) onFallback(epoch uint64) {
	if m.stale(epoch) || m.state != StateResolving {
		return
	}

	m.timer = nil
	m.resolvedBy = resolvedByFallback
	m.logger.Warn().Uint64("epoch", epoch).Dur("fallback", m.fallback).
		Msg("session not resolved in time, assuming signed out")
	m.resolve(nil)
}

// resolve settles on a terminal state. Repeating the current state with the
// same session is a no-op.
func (m *Machine) resolve(identity *models.Identity) {
	if identity != nil && identity.Expired(m.now()) {
		identity = nil
	}

	next := StateUnauthenticated
	if identity != nil {
		next = StateAuthenticated
	}

	if next == m.state && sameSession(m.identity, identity) {
		return
	}

	m.publish(next, identity)
	m.logger.Info().Str("state", next.String()).Str("resolved_by", m.resolvedBy.String()).Msg("session resolved")
}

func (m *Machine) publish(state State, identity *models.Identity) {
	m.state = state
	m.identity = identity
	snap := m.snapshot()
	m.current.Store(&snap)
	m.observers.Notify(snap)
}

func (m *Machine) snapshot() Snapshot {
	return Snapshot{State: m.state, Identity: cloneIdentity(m.identity)}
}

func (m *Machine) stale(epoch uint64) bool {
	return m.closed || epoch != m.epoch
}

// teardown drops the auth subscription and the fallback timer together.
func (m *Machine) teardown() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.disarm()
}

func (m *Machine) disarm() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func sameSession(a, b *models.Identity) bool {
	if !a.SameUser(b) {
		return false
	}
	return a == nil || a.Token == b.Token
}

func cloneIdentity(identity *models.Identity) *models.Identity {
	if identity == nil {
		return nil
	}
	c := *identity
	return &c
}

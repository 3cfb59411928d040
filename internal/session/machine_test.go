// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = time.Second

// ── fakes ────────────────────────────────────────────────────────────────────

type queryResult struct {
	identity *models.Identity
	err      error
}

// pendingQuery is one in-flight CurrentIdentity call the test answers.
type pendingQuery struct {
	reply chan queryResult
}

func (p *pendingQuery) answer(identity *models.Identity, err error) {
	p.reply <- queryResult{identity: identity, err: err}
}

// fakeAuth is an AuthCollaborator whose query completion and auth events are
// driven by the test.
type fakeAuth struct {
	mu       sync.Mutex
	handlers map[int]func(*models.Identity)
	next     int

	queries      chan *pendingQuery
	subscribes   atomic.Int32
	unsubscribes atomic.Int32

	signInErr   error
	registerErr error
	signOutErr  error
	signIns     atomic.Int32
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		handlers: make(map[int]func(*models.Identity)),
		queries:  make(chan *pendingQuery, 8),
	}
}

func (f *fakeAuth) CurrentIdentity(ctx context.Context) (*models.Identity, error) {
	p := &pendingQuery{reply: make(chan queryResult, 1)}
	f.queries <- p
	select {
	case r := <-p.reply:
		return r.identity, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeAuth) SubscribeAuthChanges(handler func(*models.Identity)) func() {
	f.subscribes.Add(1)
	f.mu.Lock()
	f.next++
	id := f.next
	f.handlers[id] = handler
	f.mu.Unlock()

	return func() {
		f.unsubscribes.Add(1)
		f.mu.Lock()
		delete(f.handlers, id)
		f.mu.Unlock()
	}
}

func (f *fakeAuth) SignIn(_ context.Context, _ models.User) error {
	f.signIns.Add(1)
	return f.signInErr
}

func (f *fakeAuth) Register(_ context.Context, _ models.User) error {
	return f.registerErr
}

func (f *fakeAuth) SignOut(_ context.Context) error {
	return f.signOutErr
}

func (f *fakeAuth) emit(identity *models.Identity) {
	f.mu.Lock()
	handlers := make([]func(*models.Identity), 0, len(f.handlers))
	for _, h := range f.handlers {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()

	for _, h := range handlers {
		h(identity)
	}
}

func (f *fakeAuth) nextQuery(t *testing.T) *pendingQuery {
	t.Helper()
	select {
	case p := <-f.queries:
		return p
	case <-time.After(waitFor):
		t.Fatal("session query was not issued")
		return nil
	}
}

// manualTimer fires only when the test says so.
type manualTimer struct {
	mu      sync.Mutex
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (t *manualTimer) fire() {
	t.mu.Lock()
	stopped := t.stopped
	t.mu.Unlock()
	if !stopped {
		t.f()
	}
}

func (t *manualTimer) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type manualTimers struct {
	mu     sync.Mutex
	timers []*manualTimer
	delays []time.Duration
}

func (m *manualTimers) afterFunc(d time.Duration, f func()) timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{f: f}
	m.timers = append(m.timers, t)
	m.delays = append(m.delays, d)
	return t
}

func (m *manualTimers) get(t *testing.T, i int) *manualTimer {
	t.Helper()
	var tm *manualTimer
	require.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if len(m.timers) > i {
			tm = m.timers[i]
			return true
		}
		return false
	}, waitFor, time.Millisecond)
	return tm
}

// recorder keeps every snapshot a machine publishes.
type recorder struct {
	mu    sync.Mutex
	snaps []Snapshot
	notes []models.Notification
}

func (r *recorder) states() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]State, 0, len(r.snaps))
	for _, s := range r.snaps {
		out = append(out, s.State)
	}
	return out
}

func (r *recorder) notifications() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.notes...)
}

func newTestMachine(t *testing.T, auth *fakeAuth) (*Machine, *manualTimers, *recorder) {
	t.Helper()
	m := NewMachine(auth, config.ClientSession{FallbackTimeout: time.Second}, logger.Nop())
	timers := &manualTimers{}
	m.afterFunc = timers.afterFunc
	t.Cleanup(m.Close)

	rec := &recorder{}
	m.OnChange(func(s Snapshot) {
		rec.mu.Lock()
		rec.snaps = append(rec.snaps, s)
		rec.mu.Unlock()
	})
	m.OnNotify(func(n models.Notification) {
		rec.mu.Lock()
		rec.notes = append(rec.notes, n)
		rec.mu.Unlock()
	})
	return m, timers, rec
}

// flush waits until everything posted so far has been handled.
func flush(m *Machine) {
	m.box.Call(func() {})
}

func waitState(t *testing.T, m *Machine, want State) {
	t.Helper()
	require.Eventually(t, func() bool { return m.Snapshot().State == want }, waitFor, time.Millisecond,
		"expected state %s, got %s", want, m.Snapshot().State)
}

func alice() *models.Identity {
	return &models.Identity{UserID: 1, Login: "alice", Token: "token-a"}
}

func bob() *models.Identity {
	return &models.Identity{UserID: 2, Login: "bob", Token: "token-b"}
}

// ── NewMachine ───────────────────────────────────────────────────────────────

func TestNewMachine_StartsUnresolved(t *testing.T) {
	m, _, rec := newTestMachine(t, newFakeAuth())

	assert.Equal(t, StateUnresolved, m.Snapshot().State)
	assert.Nil(t, m.Snapshot().Identity)
	assert.Equal(t, []State{StateUnresolved}, rec.states())
}

func TestNewMachine_DefaultFallback(t *testing.T) {
	m := NewMachine(newFakeAuth(), config.ClientSession{}, logger.Nop())
	defer m.Close()

	assert.Equal(t, config.DefaultFallbackTimeout, m.fallback)
}

// ── resolution ───────────────────────────────────────────────────────────────

func TestMachine_QueryResolvesAuthenticated(t *testing.T) {
	auth := newFakeAuth()
	m, timers, rec := newTestMachine(t, auth)

	m.Start()
	auth.nextQuery(t).answer(alice(), nil)
	waitState(t, m, StateAuthenticated)

	assert.Equal(t, int64(1), m.Snapshot().Identity.UserID)
	assert.True(t, timers.get(t, 0).isStopped(), "fallback timer must be disarmed")
	assert.Equal(t, []State{StateUnresolved, StateResolving, StateAuthenticated}, rec.states())
}

func TestMachine_QueryResolvesUnauthenticated(t *testing.T) {
	auth := newFakeAuth()
	m, timers, _ := newTestMachine(t, auth)

	m.Start()
	auth.nextQuery(t).answer(nil, nil)
	waitState(t, m, StateUnauthenticated)

	assert.Nil(t, m.Snapshot().Identity)
	assert.True(t, timers.get(t, 0).isStopped())
}

func TestMachine_EventWinsOverLaterQuery(t *testing.T) {
	auth := newFakeAuth()
	m, _, rec := newTestMachine(t, auth)

	m.Start()
	q := auth.nextQuery(t)
	auth.emit(alice())
	waitState(t, m, StateAuthenticated)

	q.answer(bob(), nil)
	flush(m)

	assert.Equal(t, int64(1), m.Snapshot().Identity.UserID, "late query must not override the event")
	assert.Equal(t, []State{StateUnresolved, StateResolving, StateAuthenticated}, rec.states())
}

func TestMachine_ConsistentEventDoesNotFlicker(t *testing.T) {
	auth := newFakeAuth()
	m, _, rec := newTestMachine(t, auth)

	m.Start()
	auth.nextQuery(t).answer(alice(), nil)
	waitState(t, m, StateAuthenticated)

	auth.emit(alice())
	flush(m)

	assert.Equal(t, []State{StateUnresolved, StateResolving, StateAuthenticated}, rec.states())
}

func TestMachine_TokenRefreshPublishesSameState(t *testing.T) {
	auth := newFakeAuth()
	m, _, rec := newTestMachine(t, auth)

	m.Start()
	auth.nextQuery(t).answer(alice(), nil)
	waitState(t, m, StateAuthenticated)

	refreshed := alice()
	refreshed.Token = "token-a2"
	auth.emit(refreshed)
	flush(m)

	assert.Equal(t, "token-a2", m.Snapshot().Identity.Token)
	assert.Equal(t,
		[]State{StateUnresolved, StateResolving, StateAuthenticated, StateAuthenticated},
		rec.states())
}

func TestMachine_ReentrantTransitions(t *testing.T) {
	auth := newFakeAuth()
	m, _, _ := newTestMachine(t, auth)

	m.Start()
	auth.nextQuery(t).answer(alice(), nil)
	waitState(t, m, StateAuthenticated)

	auth.emit(nil)
	waitState(t, m, StateUnauthenticated)

	auth.emit(bob())
	waitState(t, m, StateAuthenticated)
	assert.Equal(t, int64(2), m.Snapshot().Identity.UserID)
}

func TestMachine_ExpiredIdentityIsUnauthenticated(t *testing.T) {
	auth := newFakeAuth()
	m, _, _ := newTestMachine(t, auth)

	expired := alice()
	expired.ExpiresAt = time.Now().Add(-time.Minute)

	m.Start()
	auth.nextQuery(t).answer(expired, nil)
	waitState(t, m, StateUnauthenticated)
}

// ── fallback timer ───────────────────────────────────────────────────────────

func TestMachine_FallbackForcesUnauthenticated(t *testing.T) {
	auth := newFakeAuth()
	m, timers, _ := newTestMachine(t, auth)

	m.Start()
	auth.nextQuery(t)
	tm := timers.get(t, 0)
	assert.Equal(t, time.Second, timers.delays[0])

	tm.fire()
	waitState(t, m, StateUnauthenticated)
}

func TestMachine_LateQueryAfterFallbackApplies(t *testing.T) {
	auth := newFakeAuth()
	m, timers, _ := newTestMachine(t, auth)

	m.Start()
	q := auth.nextQuery(t)
	timers.get(t, 0).fire()
	waitState(t, m, StateUnauthenticated)

	q.answer(alice(), nil)
	waitState(t, m, StateAuthenticated)
}

func TestMachine_FallbackAfterResolutionIgnored(t *testing.T) {
	auth := newFakeAuth()
	m, timers, rec := newTestMachine(t, auth)

	m.Start()
	auth.nextQuery(t).answer(alice(), nil)
	waitState(t, m, StateAuthenticated)

	tm := timers.get(t, 0)
	tm.f()
	flush(m)

	assert.Equal(t, StateAuthenticated, m.Snapshot().State)
	assert.Equal(t, []State{StateUnresolved, StateResolving, StateAuthenticated}, rec.states())
}

func TestMachine_TimeoutBound(t *testing.T) {
	auth := newFakeAuth()
	const fallback = 50 * time.Millisecond
	m := NewMachine(auth, config.ClientSession{FallbackTimeout: fallback}, logger.Nop())
	t.Cleanup(m.Close)

	resolved := make(chan time.Time, 1)
	m.OnChange(func(s Snapshot) {
		if s.State == StateUnauthenticated {
			resolved <- time.Now()
		}
	})

	started := time.Now()
	m.Start()

	select {
	case at := <-resolved:
		elapsed := at.Sub(started)
		assert.GreaterOrEqual(t, elapsed, fallback)
		assert.Less(t, elapsed, fallback+250*time.Millisecond)
	case <-time.After(waitFor):
		t.Fatal("machine did not reach unauthenticated within the fallback")
	}
}

// ── query failure ────────────────────────────────────────────────────────────

func TestMachine_QueryFailureNotifiesAndWaitsForFallback(t *testing.T) {
	auth := newFakeAuth()
	m, timers, rec := newTestMachine(t, auth)

	m.Start()
	auth.nextQuery(t).answer(nil, errors.New("connection refused"))

	require.Eventually(t, func() bool { return len(rec.notifications()) == 1 }, waitFor, time.Millisecond)
	n := rec.notifications()[0]
	assert.Equal(t, models.KindAuthQueryFailed, n.Kind)
	assert.ErrorIs(t, n.Err, ErrAuthQueryFailed)
	assert.Contains(t, n.Message(), "connection refused")
	assert.Equal(t, StateResolving, m.Snapshot().State)

	timers.get(t, 0).fire()
	waitState(t, m, StateUnauthenticated)
}

// ── restart / epoch ──────────────────────────────────────────────────────────

func TestMachine_RestartIgnoresPreviousEpoch(t *testing.T) {
	auth := newFakeAuth()
	m, timers, _ := newTestMachine(t, auth)

	m.Start()
	first := auth.nextQuery(t)
	firstTimer := timers.get(t, 0)

	m.Start()
	second := auth.nextQuery(t)
	assert.True(t, firstTimer.isStopped(), "restart must disarm the previous timer")
	assert.Equal(t, int32(1), auth.unsubscribes.Load(), "restart must drop the previous subscription")

	first.answer(alice(), nil)
	flush(m)
	assert.Equal(t, StateResolving, m.Snapshot().State)

	firstTimer.f()
	flush(m)
	assert.Equal(t, StateResolving, m.Snapshot().State)

	second.answer(bob(), nil)
	waitState(t, m, StateAuthenticated)
	assert.Equal(t, int64(2), m.Snapshot().Identity.UserID)
}

// ── SignIn / Register / SignOut ──────────────────────────────────────────────

func TestMachine_SignInSuccessDoesNotMutate(t *testing.T) {
	auth := newFakeAuth()
	m, _, _ := newTestMachine(t, auth)

	m.Start()
	auth.nextQuery(t).answer(nil, nil)
	waitState(t, m, StateUnauthenticated)

	require.NoError(t, m.SignIn(context.Background(), models.User{Login: "alice", Password: "pw"}))
	flush(m)
	assert.Equal(t, StateUnauthenticated, m.Snapshot().State)
	assert.Equal(t, int32(1), auth.signIns.Load())

	auth.emit(alice())
	waitState(t, m, StateAuthenticated)
}

func TestMachine_OperationFailures(t *testing.T) {
	tests := []struct {
		name string
		call func(m *Machine) error
		auth *fakeAuth
	}{
		{
			name: "sign in",
			auth: &fakeAuth{signInErr: errors.New("wrong password")},
			call: func(m *Machine) error { return m.SignIn(context.Background(), models.User{}) },
		},
		{
			name: "register",
			auth: &fakeAuth{registerErr: errors.New("login taken")},
			call: func(m *Machine) error { return m.Register(context.Background(), models.User{}) },
		},
		{
			name: "sign out",
			auth: &fakeAuth{signOutErr: errors.New("disk full")},
			call: func(m *Machine) error { return m.SignOut(context.Background()) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.auth.handlers = make(map[int]func(*models.Identity))
			tt.auth.queries = make(chan *pendingQuery, 8)
			m, _, rec := newTestMachine(t, tt.auth)

			err := tt.call(m)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAuthOperationFailed)

			require.Eventually(t, func() bool { return len(rec.notifications()) == 1 }, waitFor, time.Millisecond)
			assert.Equal(t, models.KindAuthOperationFailed, rec.notifications()[0].Kind)
			assert.Equal(t, StateUnresolved, m.Snapshot().State)
		})
	}
}

// ── Close ────────────────────────────────────────────────────────────────────

func TestMachine_CloseTearsDownOnce(t *testing.T) {
	auth := newFakeAuth()
	m, timers, _ := newTestMachine(t, auth)

	m.Start()
	auth.nextQuery(t)
	tm := timers.get(t, 0)

	m.Close()
	m.Close()

	assert.Equal(t, int32(1), auth.subscribes.Load())
	assert.Equal(t, int32(1), auth.unsubscribes.Load())
	assert.True(t, tm.isStopped())
}

func TestMachine_NoTransitionsAfterClose(t *testing.T) {
	auth := newFakeAuth()
	m, timers, _ := newTestMachine(t, auth)

	m.Start()
	q := auth.nextQuery(t)
	tm := timers.get(t, 0)
	m.Close()

	q.answer(alice(), nil)
	tm.f()
	auth.emit(alice())
	m.Start()

	assert.Equal(t, StateResolving, m.Snapshot().State)
}

// ── State ────────────────────────────────────────────────────────────────────

func TestState_String(t *testing.T) {
	assert.Equal(t, "unresolved", StateUnresolved.String())
	assert.Equal(t, "resolving", StateResolving.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestState_Terminal(t *testing.T) {
	assert.False(t, StateUnresolved.Terminal())
	assert.False(t, StateResolving.Terminal())
	assert.True(t, StateAuthenticated.Terminal())
	assert.True(t, StateUnauthenticated.Terminal())
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package livesync

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/mailbox"
	"github.com/MKhiriev/go-bookmarks/internal/validators"
	"github.com/MKhiriev/go-bookmarks/models"
)

// journalEntry is a change applied while a snapshot was in flight. Entries
// newer than a snapshot's mark are replayed on top of it.
type journalEntry struct {
	seq   uint64
	event models.ChangeEvent
}

// Synchronizer owns the in-memory bookmark collection of the active
// identity. Its methods are safe for concurrent use.
type Synchronizer struct {
	store     BookmarkStore
	focus     FocusSource
	validator validators.Validator
	logger    *logger.Logger
	box       *mailbox.Mailbox

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	current atomic.Pointer[View]

	// owned by the mailbox goroutine
	identity   *models.Identity
	epoch      uint64
	closed     bool
	collection *Collection
	loaded     bool

	journal    []journalEntry
	seq        uint64
	generation uint64
	applied    uint64
	pending    map[uint64]uint64 // snapshot generation -> journal seq at request time

	creating int
	deleting map[string]int

	unsubscribeChanges func()
	cancelFocus        func()

	observers mailbox.Observers[View]
	notifiers mailbox.Observers[models.Notification]
}

// NewSynchronizer returns an idle Synchronizer. focus may be nil.
func NewSynchronizer(store BookmarkStore, focus FocusSource, log *logger.Logger) *Synchronizer {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Synchronizer{
		store:      store,
		focus:      focus,
		validator:  validators.NewBookmarkValidator(),
		logger:     log.WithComponent("livesync"),
		box:        mailbox.New(),
		ctx:        ctx,
		cancel:     cancel,
		collection: NewCollection(),
		pending:    make(map[uint64]uint64),
		deleting:   make(map[string]int),
	}
	s.current.Store(&View{})
	return s
}

// Reset binds the synchronizer to identity. A different user, or nil, tears
// the current session down first. The same user with a new token only
// refreshes the token.
func (s *Synchronizer) Reset(identity *models.Identity) {
	identity = cloneIdentity(identity)
	s.box.Post(func() { s.reset(identity) })
}

// Revalidate fetches a fresh snapshot for the active session.
func (s *Synchronizer) Revalidate() {
	s.box.Post(func() {
		if s.closed || s.identity == nil {
			return
		}
		s.logger.Debug().Int64("user_id", s.identity.UserID).Msg("revalidating")
		s.requestSnapshot()
	})
}

// Add creates a bookmark. The record is inserted from the create response;
// the matching pushed event is then ignored as a duplicate. On failure the
// collection is left untouched and a CreateFailed notification is sent.
func (s *Synchronizer) Add(ctx context.Context, input models.BookmarkInput) (models.Bookmark, error) {
	input = validators.NormalizeBookmarkInput(input)
	if err := s.validator.Validate(ctx, input); err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrCreateFailed, err)
		s.box.Post(func() { s.notify(models.KindCreateFailed, wrapped) })
		return models.Bookmark{}, wrapped
	}

	var (
		identity models.Identity
		epoch    uint64
		active   bool
	)
	if !s.box.Call(func() {
		if s.closed || s.identity == nil {
			return
		}
		active = true
		identity, epoch = *s.identity, s.epoch
		s.creating++
		s.publish()
	}) {
		return models.Bookmark{}, ErrClosed
	}
	if !active {
		return models.Bookmark{}, ErrNoActiveSession
	}

	created, err := s.store.Create(ctx, identity, input)

	var result error
	if !s.box.Call(func() { result = s.onCreated(epoch, identity, created, err) }) {
		return models.Bookmark{}, ErrClosed
	}
	if result != nil {
		return models.Bookmark{}, result
	}
	return created, nil
}

// Delete removes the bookmark locally right away and then asks the store.
// If the request fails the record is not put back; a DeleteFailed
// notification is sent and the next snapshot decides. Deleting an id that
// is not in the collection does nothing.
func (s *Synchronizer) Delete(ctx context.Context, id string) error {
	var (
		identity models.Identity
		epoch    uint64
		active   bool
		present  bool
	)
	if !s.box.Call(func() {
		if s.closed || s.identity == nil {
			return
		}
		active = true
		identity, epoch = *s.identity, s.epoch
		if !s.collection.Contains(id) {
			return
		}
		present = true
		s.applyChange(models.ChangeEvent{
			Kind:   models.ChangeDeleted,
			Record: models.Bookmark{ID: id, OwnerID: identity.UserID},
		})
		s.deleting[id]++
		s.publish()
	}) {
		return ErrClosed
	}
	if !active {
		return ErrNoActiveSession
	}
	if !present {
		s.logger.Debug().Str("bookmark_id", id).Msg("delete of unknown bookmark ignored")
		return nil
	}

	err := s.store.Delete(ctx, identity, id)

	var result error
	if !s.box.Call(func() { result = s.onDeleted(epoch, id, err) }) {
		return ErrClosed
	}
	return result
}

// View returns the latest published view.
func (s *Synchronizer) View() View {
	return *s.current.Load()
}

// OnChange registers fn for every published view and calls it right away
// with the current one. Callbacks run on the synchronizer goroutine, must
// not block and must not modify the view.
func (s *Synchronizer) OnChange(fn func(View)) (cancel func()) {
	var id int
	if !s.box.Call(func() {
		id = s.observers.Add(fn)
		fn(*s.current.Load())
	}) {
		return func() {}
	}
	return func() {
		s.box.Post(func() { s.observers.Remove(id) })
	}
}

// OnNotify registers fn for error notifications.
func (s *Synchronizer) OnNotify(fn func(models.Notification)) (cancel func()) {
	var id int
	if !s.box.Call(func() { id = s.notifiers.Add(fn) }) {
		return func() {}
	}
	return func() {
		s.box.Post(func() { s.notifiers.Remove(id) })
	}
}

// Close tears the active session down and stops the synchronizer. It is
// safe to call more than once.
func (s *Synchronizer) Close() {
	s.closeOnce.Do(func() {
		s.box.Call(func() {
			s.teardown()
			s.closed = true
			s.observers.Clear()
			s.notifiers.Clear()
		})
		s.cancel()
		s.box.Close()
		s.logger.Debug().Msg("synchronizer closed")
	})
}

func (s *Synchronizer) reset(identity *models.Identity) {
	if s.closed {
		return
	}

	if identity != nil && s.identity.SameUser(identity) {
		if s.identity.Token != identity.Token {
			s.identity = identity
			s.publish()
		}
		return
	}

	s.teardown()
	if identity == nil {
		s.logger.Info().Msg("session ended")
		s.publish()
		return
	}
	s.start(identity)
}

func (s *Synchronizer) start(identity *models.Identity) {
	s.identity = identity
	epoch := s.epoch

	unsubscribe, err := s.store.SubscribeChanges(s.ctx, *identity, func(event models.ChangeEvent) {
		s.box.Post(func() { s.onChange(epoch, event) })
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", identity.UserID).Msg("subscribe to changes")
		s.notify(models.KindFetchFailed, fmt.Errorf("%w: %w", ErrSubscribeFailed, err))
	} else {
		s.unsubscribeChanges = unsubscribe
	}

	if s.focus != nil {
		s.cancelFocus = s.focus.OnFocus(s.Revalidate)
	}

	s.logger.Info().Int64("user_id", identity.UserID).Uint64("epoch", epoch).Msg("session started")
	s.requestSnapshot()
}

// teardown drops the change stream and the focus trigger together and
// forgets everything bound to the session.
func (s *Synchronizer) teardown() {
	if s.unsubscribeChanges != nil {
		s.unsubscribeChanges()
		s.unsubscribeChanges = nil
	}
	if s.cancelFocus != nil {
		s.cancelFocus()
		s.cancelFocus = nil
	}

	s.epoch++
	s.identity = nil
	s.collection.Clear()
	s.loaded = false
	s.journal = nil
	clear(s.pending)
	s.applied = 0
	s.creating = 0
	clear(s.deleting)
}

func (s *Synchronizer) requestSnapshot() {
	if len(s.pending) == 0 {
		s.journal = nil
	}

	s.generation++
	generation := s.generation
	s.pending[generation] = s.seq

	epoch, identity := s.epoch, *s.identity
	go func() {
		records, err := s.store.FetchAll(s.ctx, identity)
		s.box.Post(func() { s.onSnapshot(epoch, generation, records, err) })
	}()

	s.publish()
}

func (s *Synchronizer) onSnapshot(epoch, generation uint64, records []models.Bookmark, err error) {
	if s.closed || epoch != s.epoch {
		s.logger.Debug().Uint64("epoch", epoch).Msg("snapshot of a previous session discarded")
		return
	}

	mark, ok := s.pending[generation]
	if !ok {
		return
	}
	delete(s.pending, generation)

	switch {
	case err != nil:
		s.logger.Warn().Err(err).Uint64("generation", generation).Msg("snapshot fetch failed")
		s.notify(models.KindFetchFailed, fmt.Errorf("%w: %w", ErrFetchFailed, err))
		if !s.loaded {
			s.replayJournal(mark)
		}

	case generation < s.applied:
		s.logger.Debug().Uint64("generation", generation).Uint64("applied", s.applied).
			Msg("out of order snapshot discarded")

	default:
		s.applySnapshot(generation, mark, records)
	}

	s.trimJournal()
	s.publish()
}

func (s *Synchronizer) applySnapshot(generation, mark uint64, records []models.Bookmark) {
	owned := make([]models.Bookmark, 0, len(records))
	for _, r := range records {
		if r.OwnerID != s.identity.UserID {
			continue
		}
		owned = append(owned, r)
	}
	if dropped := len(records) - len(owned); dropped > 0 {
		s.logger.Warn().Int("dropped", dropped).Msg("snapshot contained foreign records")
	}

	s.applied = generation
	s.collection.Replace(owned)
	replayed := s.replayJournal(mark)

	// The snapshot may predate a delete that has not been confirmed yet.
	for id := range s.deleting {
		s.collection.Apply(models.ChangeEvent{
			Kind:   models.ChangeDeleted,
			Record: models.Bookmark{ID: id, OwnerID: s.identity.UserID},
		})
	}
	s.loaded = true

	s.logger.Debug().
		Uint64("generation", generation).
		Int("records", s.collection.Len()).
		Int("replayed", replayed).
		Msg("snapshot applied")
}

// replayJournal applies the changes journaled after mark and returns their count.
func (s *Synchronizer) replayJournal(mark uint64) int {
	replayed := 0
	for _, entry := range s.journal {
		if entry.seq > mark {
			s.collection.Apply(entry.event)
			replayed++
		}
	}
	return replayed
}

// trimJournal drops entries no pending snapshot will replay.
func (s *Synchronizer) trimJournal() {
	if len(s.pending) == 0 {
		s.journal = nil
		return
	}

	oldest := s.seq
	for _, mark := range s.pending {
		oldest = min(oldest, mark)
	}
	s.journal = slices.DeleteFunc(s.journal, func(e journalEntry) bool { return e.seq <= oldest })
}

func (s *Synchronizer) onChange(epoch uint64, event models.ChangeEvent) {
	if s.closed || epoch != s.epoch {
		return
	}
	if !event.Kind.Valid() || event.Record.ID == "" {
		s.logger.Warn().Str("kind", string(event.Kind)).Msg("malformed change event ignored")
		return
	}
	if event.Record.OwnerID != s.identity.UserID {
		s.logger.Warn().Int64("owner_id", event.Record.OwnerID).Msg("change event for another user ignored")
		return
	}

	if s.applyChange(event) {
		s.publish()
	}
}

// applyChange journals event for in-flight snapshots and applies it unless
// the first snapshot is still outstanding. It reports whether the collection
// changed.
func (s *Synchronizer) applyChange(event models.ChangeEvent) bool {
	if len(s.pending) == 0 {
		return s.collection.Apply(event)
	}
	s.seq++
	s.journal = append(s.journal, journalEntry{seq: s.seq, event: event})
	if !s.loaded {
		return false
	}
	return s.collection.Apply(event)
}

func (s *Synchronizer) onCreated(epoch uint64, identity models.Identity, created models.Bookmark, err error) error {
	if s.closed || epoch != s.epoch {
		return ErrSessionChanged
	}
	s.creating--

	if err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrCreateFailed, err)
		s.logger.Warn().Err(err).Msg("create failed")
		s.notify(models.KindCreateFailed, wrapped)
		s.publish()
		return wrapped
	}

	if created.OwnerID == 0 {
		created.OwnerID = identity.UserID
	}
	s.applyChange(models.ChangeEvent{Kind: models.ChangeCreated, Record: created})
	s.publish()
	return nil
}

func (s *Synchronizer) onDeleted(epoch uint64, id string, err error) error {
	if s.closed || epoch != s.epoch {
		return ErrSessionChanged
	}

	if s.deleting[id]--; s.deleting[id] <= 0 {
		delete(s.deleting, id)
	}

	var wrapped error
	if err != nil {
		wrapped = fmt.Errorf("%w: %w", ErrDeleteFailed, err)
		s.logger.Warn().Err(err).Str("bookmark_id", id).Msg("delete failed")
		s.notify(models.KindDeleteFailed, wrapped)
	}
	s.publish()
	return wrapped
}

func (s *Synchronizer) notify(kind models.ErrorKind, err error) {
	s.notifiers.Notify(models.NewNotification(kind, err))
}

func (s *Synchronizer) publish() {
	inFlight := len(s.pending) > 0
	v := View{
		Identity:   cloneIdentity(s.identity),
		Records:    s.collection.Records(),
		Loaded:     s.loaded,
		Loading:    inFlight && !s.loaded,
		Refreshing: inFlight && s.loaded,
		Creating:   s.creating,
	}
	for id := range s.deleting {
		v.Deleting = append(v.Deleting, id)
	}
	slices.Sort(v.Deleting)

	s.current.Store(&v)
	s.observers.Notify(v)
}

func cloneIdentity(identity *models.Identity) *models.Identity {
	if identity == nil {
		return nil
	}
	c := *identity
	return &c
}

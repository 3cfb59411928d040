package tui

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-bookmarks/internal/livesync"
	"github.com/MKhiriev/go-bookmarks/internal/session"
	"github.com/MKhiriev/go-bookmarks/models"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeSession records intents and lets tests publish snapshots.
type fakeSession struct {
	mu        sync.Mutex
	snapshot  session.Snapshot
	changes   []func(session.Snapshot)
	notifies  []func(models.Notification)
	signIns   []models.User
	registers []models.User
	signOuts  int
	err       error
}

func (f *fakeSession) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

func (f *fakeSession) OnChange(fn func(session.Snapshot)) func() {
	f.mu.Lock()
	f.changes = append(f.changes, fn)
	current := f.snapshot
	f.mu.Unlock()
	fn(current)
	return func() {}
}

func (f *fakeSession) OnNotify(fn func(models.Notification)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifies = append(f.notifies, fn)
	return func() {}
}

func (f *fakeSession) SignIn(_ context.Context, credentials models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signIns = append(f.signIns, credentials)
	return f.err
}

func (f *fakeSession) Register(_ context.Context, credentials models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers = append(f.registers, credentials)
	return f.err
}

func (f *fakeSession) SignOut(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOuts++
	return f.err
}

func (f *fakeSession) publish(s session.Snapshot) {
	f.mu.Lock()
	f.snapshot = s
	fns := append([]func(session.Snapshot){}, f.changes...)
	f.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

// fakeBookmarks records intents against a fixed view.
type fakeBookmarks struct {
	mu          sync.Mutex
	view        livesync.View
	changes     []func(livesync.View)
	added       []models.BookmarkInput
	deleted     []string
	revalidates int
	err         error
}

func (f *fakeBookmarks) View() livesync.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

func (f *fakeBookmarks) OnChange(fn func(livesync.View)) func() {
	f.mu.Lock()
	f.changes = append(f.changes, fn)
	current := f.view
	f.mu.Unlock()
	fn(current)
	return func() {}
}

func (f *fakeBookmarks) OnNotify(func(models.Notification)) func() {
	return func() {}
}

func (f *fakeBookmarks) Add(_ context.Context, input models.BookmarkInput) (models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, input)
	if f.err != nil {
		return models.Bookmark{}, f.err
	}
	return models.Bookmark{ID: "new", Title: input.Title, URL: input.URL}, nil
}

func (f *fakeBookmarks) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeBookmarks) Revalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revalidates++
}

type fakeFocus struct {
	fired int
}

func (f *fakeFocus) Fire() {
	f.fired++
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	ctrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
)

package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-bookmarks/internal/livesync"
	"github.com/MKhiriev/go-bookmarks/internal/session"
	"github.com/MKhiriev/go-bookmarks/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList(records ...models.Bookmark) (*ListModel, *fakeBookmarks) {
	b := &fakeBookmarks{view: livesync.View{Identity: alice, Records: records, Loaded: true}}
	return NewListModel(context.Background(), b), b
}

// ── navigation ───────────────────────────────────────────────────────────────

func TestList_CursorFollowsView(t *testing.T) {
	m, _ := newTestList(bookmark("c", "C", 3), bookmark("b", "B", 2), bookmark("a", "A", 1))

	m.Update(runes("j"))
	m.Update(runes("j"))
	m.Update(runes("j"))
	assert.Equal(t, 2, m.idx)

	m.Update(viewChangedMsg{view: livesync.View{Identity: alice, Records: []models.Bookmark{bookmark("c", "C", 3)}, Loaded: true}})
	assert.Equal(t, 0, m.idx)

	m.Update(viewChangedMsg{view: livesync.View{Identity: alice, Loaded: true}})
	assert.Equal(t, 0, m.idx)
	assert.Contains(t, m.View(), "Закладок пока нет")
}

func TestList_LoadingAndRefreshing(t *testing.T) {
	m, _ := newTestList()

	m.Update(viewChangedMsg{view: livesync.View{Identity: alice, Loading: true}})
	assert.Contains(t, m.View(), "Загрузка...")
	assert.NotContains(t, m.View(), "Закладок пока нет")

	m.Update(viewChangedMsg{view: livesync.View{Identity: alice, Loaded: true, Refreshing: true}})
	assert.Contains(t, m.View(), "Обновление...")
}

func TestList_RefreshRevalidates(t *testing.T) {
	m, b := newTestList()
	m.Update(runes("r"))
	assert.Equal(t, 1, b.revalidates)
}

// ── delete ───────────────────────────────────────────────────────────────────

func TestList_DeleteAfterConfirm(t *testing.T) {
	m, b := newTestList(bookmark("b", "Go", 2), bookmark("a", "Docs", 1))
	m.Update(runes("j"))

	m.Update(runes("d"))
	require.NotNil(t, m.confirming)
	assert.Contains(t, m.View(), "Удалить закладку \"Docs\"?")
	assert.True(t, m.Capturing())

	_, cmd := m.Update(runes("y"))
	require.NotNil(t, cmd)
	assert.Nil(t, m.confirming)

	msg := cmd()
	assert.Equal(t, []string{"a"}, b.deleted)

	_, clear := m.Update(msg)
	assert.NotNil(t, clear)
	assert.Contains(t, m.status, "Docs")
}

func TestList_DeleteCancelled(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("n"), escKey} {
		m, b := newTestList(bookmark("a", "Docs", 1))
		m.Update(runes("d"))
		_, cmd := m.Update(k)

		assert.Nil(t, cmd)
		assert.Nil(t, m.confirming)
		assert.Nil(t, m.adding, "n cancels the dialog, it does not open the form")
		assert.Empty(t, b.deleted)
	}
}

func TestList_ConfirmDroppedWhenRecordDisappears(t *testing.T) {
	m, _ := newTestList(bookmark("a", "Docs", 1))
	m.Update(runes("d"))
	require.NotNil(t, m.confirming)

	m.Update(viewChangedMsg{view: livesync.View{Identity: alice, Loaded: true}})
	assert.Nil(t, m.confirming)
}

func TestList_DeleteFailureStatus(t *testing.T) {
	m, _ := newTestList()
	m.Update(deleteDoneMsg{title: "Docs", err: errors.New("dial tcp: connection refused")})
	assert.Contains(t, m.status, "Ошибка удаления")
	assert.Contains(t, m.status, "Сервер недоступен")
}

func TestList_DeleteWithoutRecordsIgnored(t *testing.T) {
	m, _ := newTestList()
	m.Update(runes("d"))
	assert.Nil(t, m.confirming)
}

// ── copy ─────────────────────────────────────────────────────────────────────

func TestList_CopyURL(t *testing.T) {
	var mu sync.Mutex
	var copied string
	prev := writeClipboard
	writeClipboard = func(text string) error {
		mu.Lock()
		defer mu.Unlock()
		copied = text
		return nil
	}
	defer func() { writeClipboard = prev }()

	m, _ := newTestList(bookmark("b", "Go", 2))
	_, cmd := m.Update(runes("c"))
	require.NotNil(t, cmd)
	m.Update(cmd())

	mu.Lock()
	assert.Equal(t, "https://b.example", copied)
	mu.Unlock()
	assert.Equal(t, "URL скопирован", m.status)
}

func TestList_CopyFailure(t *testing.T) {
	prev := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard utilities available") }
	defer func() { writeClipboard = prev }()

	m, _ := newTestList(bookmark("b", "Go", 2))
	_, cmd := m.Update(runes("c"))
	m.Update(cmd())
	assert.Contains(t, m.status, "Буфер обмена недоступен")
}

func TestList_StatusClearsOnlyLatest(t *testing.T) {
	m, _ := newTestList()
	m.Update(copiedMsg{})
	first := m.statusSeq
	m.Update(deleteDoneMsg{title: "Docs"})

	m.Update(clearStatusMsg{seq: first})
	assert.NotEmpty(t, m.status)

	m.Update(clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}

// ── add ──────────────────────────────────────────────────────────────────────

func TestList_AddFlow(t *testing.T) {
	m, b := newTestList()

	m.Update(runes("n"))
	require.NotNil(t, m.adding)
	assert.Contains(t, m.View(), "НОВАЯ ЗАКЛАДКА")

	m.adding.inputs[fieldTitle].SetValue("  Go  ")
	m.adding.inputs[fieldURL].SetValue(" https://go.dev ")

	// enter on the title moves to the URL field.
	_, cmd := m.Update(enterKey)
	assert.Nil(t, cmd)
	assert.Equal(t, fieldURL, m.adding.focus)

	_, cmd = m.Update(enterKey)
	require.NotNil(t, cmd)
	assert.True(t, m.adding.saving)

	msg := cmd()
	require.Len(t, b.added, 1)
	assert.Equal(t, models.BookmarkInput{Title: "Go", URL: "https://go.dev"}, b.added[0])

	m.Update(msg)
	assert.Nil(t, m.adding)
	assert.Equal(t, "Закладка добавлена", m.status)
}

func TestList_AddValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		url     string
		wantErr string
	}{
		{name: "empty title", title: "   ", url: "https://go.dev", wantErr: "Название обязательно"},
		{name: "empty url", title: "Go", url: " ", wantErr: "URL обязателен"},
		{name: "no scheme", title: "Go", url: "go.dev", wantErr: "URL должен содержать схему"},
		{name: "title too long", title: strings.Repeat("x", 300), url: "https://go.dev", wantErr: "Название слишком длинное"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, b := newTestList()
			m.Update(runes("n"))
			m.adding.inputs[fieldTitle].CharLimit = 0
			m.adding.inputs[fieldTitle].SetValue(tt.title)
			m.adding.inputs[fieldURL].SetValue(tt.url)
			m.adding.focus = fieldURL

			_, cmd := m.Update(enterKey)
			assert.Nil(t, cmd)
			assert.Contains(t, m.adding.errMsg, tt.wantErr)
			assert.Empty(t, b.added)
		})
	}
}

func TestList_AddFailureKeepsForm(t *testing.T) {
	m, b := newTestList()
	b.err = errors.New("dial tcp 127.0.0.1:8080: connection refused")

	m.Update(runes("n"))
	m.adding.inputs[fieldTitle].SetValue("Go")
	m.adding.inputs[fieldURL].SetValue("https://go.dev")
	m.adding.focus = fieldURL

	_, cmd := m.Update(enterKey)
	m.Update(cmd())

	require.NotNil(t, m.adding)
	assert.False(t, m.adding.saving)
	assert.Equal(t, "Отсутствует сеть или Сервер недоступен", m.adding.errMsg)
	assert.Equal(t, "Go", m.adding.inputs[fieldTitle].Value())
}

func TestList_AddEscCloses(t *testing.T) {
	m, _ := newTestList()
	m.Update(runes("n"))
	m.Update(escKey)
	assert.Nil(t, m.adding)
}

func TestList_HotKeysAreTextInForm(t *testing.T) {
	m, b := newTestList(bookmark("a", "Docs", 1))
	m.Update(runes("n"))
	m.Update(runes("d"))
	m.Update(runes("r"))

	assert.Nil(t, m.confirming)
	assert.Zero(t, b.revalidates)
	assert.Equal(t, "dr", m.adding.inputs[fieldTitle].Value())
}

func TestList_ResetOnUserChange(t *testing.T) {
	r, _, _, _ := newTestRoot(t)
	r = signedIn(t, r, bookmark("a", "Docs", 1))
	r, _ = update(t, r, runes("n"))
	require.NotNil(t, r.list.adding)

	bob := &models.Identity{UserID: 2, Login: "bob"}
	r, _ = update(t, r, sessionChangedMsg{snapshot: session.Snapshot{State: session.StateAuthenticated, Identity: bob}})
	assert.Nil(t, r.list.adding)
}

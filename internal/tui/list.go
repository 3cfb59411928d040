// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/livesync"
	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 3 * time.Second

var writeClipboard = clipboard.WriteAll

// ListModel shows the live collection of the signed-in user. Records come
// only from published views; adding and deleting ask the collection and
// wait for the next view.
type ListModel struct {
	ctx       context.Context
	bookmarks Bookmarks

	view       livesync.View
	idx        int
	adding     *AddFormModel
	confirming *models.Bookmark
	status     string
	statusSeq  int
}

func NewListModel(ctx context.Context, bookmarks Bookmarks) *ListModel {
	return &ListModel{
		ctx:       ctx,
		bookmarks: bookmarks,
		view:      bookmarks.View(),
	}
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

// Capturing reports whether a form or dialog owns the keyboard.
func (m *ListModel) Capturing() bool {
	return m.adding != nil || m.confirming != nil
}

// Reset drops transient state when the signed-in user changes.
func (m *ListModel) Reset() {
	m.idx = 0
	m.adding = nil
	m.confirming = nil
	m.status = ""
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewChangedMsg:
		m.view = msg.view
		m.clampCursor()
		if m.confirming != nil && !m.contains(m.confirming.ID) {
			m.confirming = nil
		}
		return m, nil
	case addDoneMsg:
		if m.adding == nil {
			return m, nil
		}
		m.adding.done(msg.err)
		if msg.err != nil {
			return m, nil
		}
		m.adding = nil
		m.idx = 0
		return m, m.setStatus("Закладка добавлена")
	case deleteDoneMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Ошибка удаления: %s", humanizeError(msg.err)))
		}
		return m, m.setStatus(fmt.Sprintf("Закладка \"%s\" удалена", msg.title))
	case copiedMsg:
		if msg.err != nil {
			return m, m.setStatus("Буфер обмена недоступен: " + msg.err.Error())
		}
		return m, m.setStatus("URL скопирован")
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	if m.adding != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.esc) {
			m.adding = nil
			return m, nil
		}
		_, cmd := m.adding.Update(msg)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirming != nil {
		switch {
		case key.Matches(keyMsg, keys.yes):
			target := *m.confirming
			m.confirming = nil
			return m, m.cmdDelete(target)
		case key.Matches(keyMsg, keys.no):
			m.confirming = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.view.Records)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.newItem):
		m.adding = NewAddFormModel(m.ctx, m.bookmarks)
		return m, m.adding.Init()
	case key.Matches(keyMsg, keys.delete):
		if selected, ok := m.selected(); ok {
			m.confirming = &selected
		}
	case key.Matches(keyMsg, keys.copy):
		if selected, ok := m.selected(); ok {
			u := selected.URL
			return m, func() tea.Msg { return copiedMsg{err: writeClipboard(u)} }
		}
	case key.Matches(keyMsg, keys.refresh):
		m.bookmarks.Revalidate()
	}
	return m, nil
}

func (m *ListModel) View() string {
	if m.adding != nil {
		return m.adding.View()
	}

	var b strings.Builder
	if m.view.Identity != nil {
		b.WriteString("Пользователь: ")
		b.WriteString(m.view.Identity.Login)
		b.WriteString("\n")
	}
	switch {
	case m.view.Loading:
		b.WriteString("Загрузка...\n")
	case m.view.Refreshing:
		b.WriteString("Обновление...\n")
	}
	b.WriteString("\n")

	if len(m.view.Records) == 0 {
		if m.view.Loaded {
			b.WriteString("Закладок пока нет. Нажмите n, чтобы добавить.\n")
		}
	} else {
		b.WriteString(fmt.Sprintf("  %-3s │ %-30s │ %-40s │ %s\n", "#", "Название", "URL", "Создано"))
		b.WriteString("  ────┼────────────────────────────────┼──────────────────────────────────────────┼─────────────────\n")
		for i, r := range m.view.Records {
			cursor := " "
			line := fmt.Sprintf("%-3d │ %-30s │ %-40s │ %s", i+1, fitText(r.Title, 30), fitText(r.URL, 40), formatCreatedAt(r.CreatedAt))
			if i == m.idx {
				cursor = ">"
				line = selectedStyle.Render(line)
			}
			b.WriteString(cursor + " " + line + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	content := strings.TrimRight(b.String(), "\n")
	if m.confirming != nil {
		content += "\n\n" + confirmModel{bookmark: *m.confirming}.View()
	}

	return renderPage("ЗАКЛАДКИ", content,
		"↑/↓: навигация │ n: добавить │ d: удалить │ c: копировать URL │ r: обновить │ l: выйти │ v: версия")
}

func (m *ListModel) selected() (models.Bookmark, bool) {
	if m.idx < 0 || m.idx >= len(m.view.Records) {
		return models.Bookmark{}, false
	}
	return m.view.Records[m.idx], true
}

func (m *ListModel) contains(id string) bool {
	for _, r := range m.view.Records {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (m *ListModel) clampCursor() {
	if m.idx >= len(m.view.Records) {
		m.idx = len(m.view.Records) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *ListModel) cmdDelete(target models.Bookmark) tea.Cmd {
	ctx, bookmarks := m.ctx, m.bookmarks
	return func() tea.Msg {
		return deleteDoneMsg{title: target.Title, err: bookmarks.Delete(ctx, target.ID)}
	}
}

func (m *ListModel) setStatus(status string) tea.Cmd {
	m.statusSeq++
	m.status = status
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

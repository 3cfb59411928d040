package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-bookmarks/internal/validators"
	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldTitle = iota
	fieldURL
)

// AddFormModel collects a new bookmark. Input is trimmed and validated
// before anything is sent.
type AddFormModel struct {
	ctx       context.Context
	bookmarks Bookmarks
	validator validators.Validator

	inputs []textinput.Model
	focus  int
	saving bool
	errMsg string
}

func NewAddFormModel(ctx context.Context, bookmarks Bookmarks) *AddFormModel {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = validators.MaxTitleLength
	title.Width = 50
	title.Focus()

	u := textinput.New()
	u.Placeholder = "https://"
	u.CharLimit = validators.MaxURLLength
	u.Width = 50

	return &AddFormModel{
		ctx:       ctx,
		bookmarks: bookmarks,
		validator: validators.NewBookmarkValidator(),
		inputs:    []textinput.Model{title, u},
	}
}

func (m *AddFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles form keys. esc is left to the owner, which closes the form.
func (m *AddFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.backtab):
			m.inputs[m.focus].Blur()
			m.focus = 1 - m.focus
			m.inputs[m.focus].Focus()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.focus == fieldTitle {
				m.inputs[m.focus].Blur()
				m.focus = fieldURL
				m.inputs[m.focus].Focus()
				return m, nil
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AddFormModel) View() string {
	var b strings.Builder
	b.WriteString("Поле      │ Значение\n")
	b.WriteString("──────────┼──────────────────────────────────────────────────────\n")
	b.WriteString("Название  │ [")
	b.WriteString(m.inputs[fieldTitle].View())
	b.WriteString("]\n")
	b.WriteString("URL       │ [")
	b.WriteString(m.inputs[fieldURL].View())
	b.WriteString("]\n")

	if m.saving {
		b.WriteString("\n[Сохранение...]\n")
	} else {
		b.WriteString("\n[Сохранить]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("НОВАЯ ЗАКЛАДКА", strings.TrimRight(b.String(), "\n"), "esc: отмена │ tab: след. поле │ enter: сохранить")
}

func (m *AddFormModel) done(err error) {
	m.saving = false
	if err != nil {
		m.errMsg = humanizeError(err)
	}
}

func (m *AddFormModel) submit() tea.Cmd {
	if m.saving {
		return nil
	}

	input := validators.NormalizeBookmarkInput(models.BookmarkInput{
		Title: m.inputs[fieldTitle].Value(),
		URL:   m.inputs[fieldURL].Value(),
	})
	if err := m.validator.Validate(m.ctx, input); err != nil {
		m.errMsg = humanizeError(err)
		return nil
	}

	m.errMsg = ""
	m.saving = true
	ctx, bookmarks := m.ctx, m.bookmarks
	return func() tea.Msg {
		_, err := bookmarks.Add(ctx, input)
		return addDoneMsg{err: err}
	}
}

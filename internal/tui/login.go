// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authMode int

const (
	authModeLogin authMode = iota
	authModeRegister
)

const (
	fieldLogin = iota
	fieldPassword
	fieldRepeat
)

// AuthFormModel is the Bubble Tea model of the login and register screens.
// Submitting only asks the session to sign in; the screen is left when the
// session reports Authenticated, never on the strength of the reply alone.
type AuthFormModel struct {
	ctx     context.Context
	session Session
	mode    authMode

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewLoginModel creates the login form with login and masked password inputs.
func NewLoginModel(ctx context.Context, session Session) *AuthFormModel {
	return newAuthFormModel(ctx, session, authModeLogin)
}

// NewRegisterModel creates the register form, which also asks to repeat the
// password.
func NewRegisterModel(ctx context.Context, session Session) *AuthFormModel {
	return newAuthFormModel(ctx, session, authModeRegister)
}

func newAuthFormModel(ctx context.Context, session Session, mode authMode) *AuthFormModel {
	loginInput := textinput.New()
	loginInput.Placeholder = "login"
	loginInput.CharLimit = 64
	loginInput.Width = 40
	loginInput.Focus()

	inputs := []textinput.Model{loginInput, passwordInput("password")}
	if mode == authModeRegister {
		inputs = append(inputs, passwordInput("repeat password"))
	}

	return &AuthFormModel{
		ctx:     ctx,
		session: session,
		mode:    mode,
		inputs:  inputs,
	}
}

func passwordInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 40
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	return in
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *AuthFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [authDoneMsg]  clears submitting state; on error, populates errMsg.
//   - esc            resets the form and navigates back to the menu.
//   - tab/shift+tab  moves focus between inputs.
//   - enter          validates inputs and dispatches the async sign-in command.
//
// All other key events are forwarded to the focused input widget.
func (m *AuthFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authDoneMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeError(result.err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.Reset()
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case key.Matches(keyMsg, keys.tab):
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *AuthFormModel) View() string {
	var b strings.Builder
	b.WriteString("Поле     │ Значение\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	b.WriteString("Логин    │ [")
	b.WriteString(m.inputs[fieldLogin].View())
	b.WriteString("]\n")
	b.WriteString("Пароль   │ [")
	b.WriteString(m.inputs[fieldPassword].View())
	b.WriteString("]\n")
	if m.mode == authModeRegister {
		b.WriteString("Повтор   │ [")
		b.WriteString(m.inputs[fieldRepeat].View())
		b.WriteString("]\n")
	}

	action := "Войти"
	title := "ВХОД"
	if m.mode == authModeRegister {
		action = "Зарегистрироваться"
		title = "РЕГИСТРАЦИЯ"
	}
	if m.submitting {
		b.WriteString("\n[" + action + "...]\n")
	} else {
		b.WriteString("\n[" + action + "]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}

// Reset clears inputs and messages and focuses the login field.
func (m *AuthFormModel) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.setFocus(fieldLogin)
	m.submitting = false
	m.errMsg = ""
}

func (m *AuthFormModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	login := strings.TrimSpace(m.inputs[fieldLogin].Value())
	pass := m.inputs[fieldPassword].Value()
	if login == "" || pass == "" {
		m.errMsg = "Логин и пароль обязательны"
		return nil
	}
	if m.mode == authModeRegister && pass != m.inputs[fieldRepeat].Value() {
		m.errMsg = "Пароли не совпадают"
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, session, mode := m.ctx, m.session, m.mode
	credentials := models.User{Login: login, Password: pass}
	return func() tea.Msg {
		if mode == authModeRegister {
			return authDoneMsg{err: session.Register(ctx, credentials)}
		}
		return authDoneMsg{err: session.SignIn(ctx, credentials)}
	}
}

func (m *AuthFormModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

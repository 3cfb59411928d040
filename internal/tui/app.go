package tui

import (
	"context"

	"github.com/MKhiriev/go-bookmarks/internal/session"
	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// RootModel is the TUI router:
// 1) picks the screen from the published session state
// 2) handles global ctrl+c quit and the version window
// 3) turns terminal focus into a focus trigger
// 4) shows error notifications in an overlay
// 5) delegates all other messages to the active screen
type RootModel struct {
	ctx       context.Context
	session   Session
	focus     FocusTrigger
	buildInfo models.AppBuildInfo

	snapshot session.Snapshot
	pages    map[string]tea.Model
	current  string
	list     *ListModel

	overlay       string
	showBuildInfo bool
	quitByUser    bool
}

// NewRootModel builds the router over the signed-out pages and the list.
func NewRootModel(ctx context.Context, s Session, bookmarks Bookmarks, focus FocusTrigger, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		ctx:       ctx,
		session:   s,
		focus:     focus,
		buildInfo: buildInfo,
		snapshot:  s.Snapshot(),
		pages: map[string]tea.Model{
			pageMenu:     NewMenuModel(),
			pageLogin:    NewLoginModel(ctx, s),
			pageRegister: NewRegisterModel(ctx, s),
		},
		current: pageMenu,
		list:    NewListModel(ctx, bookmarks),
	}
}

func (r RootModel) Init() tea.Cmd {
	return nil
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			r.quitByUser = true
			return r, tea.Quit
		}
		if r.overlay != "" {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				r.overlay = ""
			}
			return r, nil
		}
		if r.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
				r.showBuildInfo = false
			}
			return r, nil
		}
		if key.Matches(msg, keys.version) && r.acceptsHotKeys() {
			r.showBuildInfo = true
			return r, nil
		}
		if key.Matches(msg, keys.logout) && r.snapshot.State == session.StateAuthenticated && !r.list.Capturing() {
			return r, r.cmdSignOut()
		}
	case tea.FocusMsg:
		if r.focus != nil {
			r.focus.Fire()
		}
		return r, nil
	case sessionChangedMsg:
		return r.onSession(msg.snapshot)
	case viewChangedMsg:
		_, cmd := r.list.Update(msg)
		return r, cmd
	case notificationMsg:
		if !shownInline(msg.notification.Kind) {
			r.overlay = notificationText(msg.notification)
		}
		return r, nil
	case signOutDoneMsg:
		if msg.err != nil {
			r.overlay = "Не удалось выйти: " + humanizeError(msg.err)
		}
		return r, nil
	case NavigateTo:
		if _, ok := r.pages[msg.Page]; !ok {
			return r, nil
		}
		r.current = msg.Page
		return r, r.pages[r.current].Init()
	}

	switch r.snapshot.State {
	case session.StateAuthenticated:
		_, cmd := r.list.Update(msg)
		return r, cmd
	case session.StateUnauthenticated:
		updated, cmd := r.pages[r.current].Update(msg)
		r.pages[r.current] = updated
		return r, cmd
	}
	return r, nil
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo, r.snapshot)
	}

	var content string
	switch r.snapshot.State {
	case session.StateAuthenticated:
		content = r.list.View()
	case session.StateUnauthenticated:
		content = r.pages[r.current].View()
	default:
		content = renderPage("GO BOOKMARKS", "Проверка сессии...", "")
	}

	if r.overlay != "" {
		content += "\n\n" + errorOverlayModel{message: r.overlay}.View()
	}
	return content
}

func (r RootModel) onSession(next session.Snapshot) (tea.Model, tea.Cmd) {
	prev := r.snapshot
	r.snapshot = next

	switch next.State {
	case session.StateAuthenticated:
		if !prev.Identity.SameUser(next.Identity) {
			r.list.Reset()
		}
		for _, page := range []string{pageLogin, pageRegister} {
			if form, ok := r.pages[page].(*AuthFormModel); ok {
				form.Reset()
			}
		}
	case session.StateUnauthenticated:
		r.current = pageMenu
		if menu, ok := r.pages[pageMenu].(*MenuModel); ok && prev.State == session.StateAuthenticated {
			menu.status = "Вы вышли из аккаунта"
		}
	}
	return r, nil
}

// acceptsHotKeys reports whether single-letter keys are free, that is no
// text input has the keyboard.
func (r RootModel) acceptsHotKeys() bool {
	switch r.snapshot.State {
	case session.StateAuthenticated:
		return !r.list.Capturing()
	case session.StateUnauthenticated:
		return r.current == pageMenu
	}
	return false
}

func (r RootModel) cmdSignOut() tea.Cmd {
	ctx, s := r.ctx, r.session
	return func() tea.Msg {
		return signOutDoneMsg{err: s.SignOut(ctx)}
	}
}

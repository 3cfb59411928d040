package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-bookmarks/internal/livesync"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/mailbox"
	"github.com/MKhiriev/go-bookmarks/internal/session"
	"github.com/MKhiriev/go-bookmarks/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("вышел из программы")

type TUI struct {
	session   Session
	bookmarks Bookmarks
	focus     FocusTrigger
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(s Session, bookmarks Bookmarks, focus FocusTrigger, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		session:   s,
		bookmarks: bookmarks,
		focus:     focus,
		buildInfo: buildInfo,
		logger:    log.WithComponent("tui"),
	}
}

// Run shows the UI until the user quits or ctx is cancelled. Quitting with
// ctrl+c returns ErrUserQuit.
func (t *TUI) Run(ctx context.Context) error {
	model := NewRootModel(ctx, t.session, t.bookmarks, t.focus, t.buildInfo)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))

	detach := t.attach(p.Send)
	defer detach()

	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if result, ok := finalModel.(RootModel); ok && result.quitByUser {
		return ErrUserQuit
	}
	return nil
}

// attach subscribes send to every session and collection publication.
// Publishers must not block, so messages go through a relay that preserves
// their order.
func (t *TUI) attach(send func(tea.Msg)) (detach func()) {
	relay := mailbox.New()
	forward := func(msg tea.Msg) {
		relay.Post(func() { send(msg) })
	}

	cancels := []func(){
		t.session.OnChange(func(s session.Snapshot) { forward(sessionChangedMsg{snapshot: s}) }),
		t.session.OnNotify(func(n models.Notification) { forward(notificationMsg{notification: n}) }),
		t.bookmarks.OnChange(func(v livesync.View) { forward(viewChangedMsg{view: v}) }),
		t.bookmarks.OnNotify(func(n models.Notification) { forward(notificationMsg{notification: n}) }),
	}

	return func() {
		for _, cancel := range cancels {
			cancel()
		}
		relay.Close()
		t.logger.Debug().Msg("ui detached")
	}
}

package tui

import (
	"github.com/MKhiriev/go-bookmarks/internal/livesync"
	"github.com/MKhiriev/go-bookmarks/internal/session"
	"github.com/MKhiriev/go-bookmarks/models"
)

// NavigateTo switches the page shown while signed out.
type NavigateTo struct {
	Page string
}

type sessionChangedMsg struct {
	snapshot session.Snapshot
}

type viewChangedMsg struct {
	view livesync.View
}

type notificationMsg struct {
	notification models.Notification
}

type authDoneMsg struct {
	err error
}

type signOutDoneMsg struct {
	err error
}

type addDoneMsg struct {
	err error
}

type deleteDoneMsg struct {
	title string
	err   error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct {
	seq int
}

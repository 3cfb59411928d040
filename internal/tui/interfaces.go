// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal host of the bookmarks client.
//
// The UI never owns client state. It renders what the session machine and
// the live collection publish, forwards user intents to them, and reports
// terminal focus so the collection can revalidate.
package tui

import (
	"context"

	"github.com/MKhiriev/go-bookmarks/internal/livesync"
	"github.com/MKhiriev/go-bookmarks/internal/session"
	"github.com/MKhiriev/go-bookmarks/models"
)

// Session is the part of the session machine the UI talks to.
type Session interface {
	Snapshot() session.Snapshot
	OnChange(fn func(session.Snapshot)) (cancel func())
	OnNotify(fn func(models.Notification)) (cancel func())
	SignIn(ctx context.Context, credentials models.User) error
	Register(ctx context.Context, credentials models.User) error
	SignOut(ctx context.Context) error
}

// Bookmarks is the part of the live collection the UI talks to.
type Bookmarks interface {
	View() livesync.View
	OnChange(fn func(livesync.View)) (cancel func())
	OnNotify(fn func(models.Notification)) (cancel func())
	Add(ctx context.Context, input models.BookmarkInput) (models.Bookmark, error)
	Delete(ctx context.Context, id string) error
	Revalidate()
}

// FocusTrigger receives terminal focus gains.
type FocusTrigger interface {
	Fire()
}

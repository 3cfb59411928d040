// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package livesync

import (
	"context"

	"github.com/MKhiriev/go-bookmarks/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/livesync_mock.go -package=mock

// BookmarkStore is the remote storage collaborator. Every call is scoped to
// the given identity.
type BookmarkStore interface {
	// FetchAll returns every bookmark owned by identity, newest first.
	FetchAll(ctx context.Context, identity models.Identity) ([]models.Bookmark, error)

	// Create stores a new bookmark and returns the authoritative record.
	Create(ctx context.Context, identity models.Identity, input models.BookmarkInput) (models.Bookmark, error)

	// Delete removes the bookmark with the given id.
	Delete(ctx context.Context, identity models.Identity, id string) error

	// SubscribeChanges starts delivering change events for identity to
	// handler until the returned function is called. It must not block on
	// network I/O; connection failures are the store's to retry.
	SubscribeChanges(ctx context.Context, identity models.Identity, handler func(models.ChangeEvent)) (unsubscribe func(), err error)
}

// FocusSource signals that the user is looking at the client again.
type FocusSource interface {
	OnFocus(fn func()) (cancel func())
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter connects the client core to the bookmarks server.
//
// [AuthAdapter] implements the session package's auth collaborator on top of
// the REST auth endpoints and a local credentials file. [BookmarkAdapter]
// implements the livesync bookmark store: REST for snapshots and one-shot
// mutations, and a websocket for the change stream.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] regardless of transport
// (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// CredentialStore persists the bearer token between client runs.
type CredentialStore interface {
	// Load returns the stored token or [ErrNoCredentials].
	Load() (string, error)

	// Save replaces the stored token.
	Save(token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}

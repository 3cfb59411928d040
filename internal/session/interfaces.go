// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"

	"github.com/MKhiriev/go-bookmarks/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// AuthCollaborator is the external source of truth about authentication.
type AuthCollaborator interface {
	// CurrentIdentity returns the identity that is valid right now, or nil
	// when nobody is signed in.
	CurrentIdentity(ctx context.Context) (*models.Identity, error)

	// SubscribeAuthChanges registers handler for every change of the
	// authentication state. A nil identity means signed out. The returned
	// function unsubscribes.
	SubscribeAuthChanges(handler func(*models.Identity)) (unsubscribe func())

	// SignIn asks the collaborator to authenticate with credentials.
	SignIn(ctx context.Context, credentials models.User) error

	// Register creates an account and signs into it.
	Register(ctx context.Context, credentials models.User) error

	// SignOut asks the collaborator to drop the current session.
	SignOut(ctx context.Context) error
}

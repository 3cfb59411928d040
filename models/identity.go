// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Identity is the authenticated principal of a client session.
//
// UserID is the stable key compared across auth events; Token is the
// bearer capability used for every storage request and may be refreshed
// without changing the identity.
type Identity struct {
	UserID    int64     `json:"user_id"`
	Login     string    `json:"login"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SameUser reports whether a and b refer to the same user key.
// Two nil identities are considered the same.
func (a *Identity) SameUser(b *Identity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.UserID == b.UserID
}

// Expired reports whether the identity carries an expiry that is not after now.
func (a *Identity) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !a.ExpiresAt.After(now)
}

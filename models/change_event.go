// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ChangeKind names the mutation a [ChangeEvent] describes.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Valid reports whether k is one of the known change kinds.
func (k ChangeKind) Valid() bool {
	switch k {
	case ChangeCreated, ChangeUpdated, ChangeDeleted:
		return true
	}
	return false
}

// ChangeEvent is a server-pushed notification about a single bookmark.
//
// For deleted events only Record.ID and Record.OwnerID are meaningful.
type ChangeEvent struct {
	Kind   ChangeKind `json:"kind"`
	Record Bookmark   `json:"record"`
	At     time.Time  `json:"at"`
}

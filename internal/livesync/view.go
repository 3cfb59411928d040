// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package livesync

import "github.com/MKhiriev/go-bookmarks/models"

// View is an immutable picture of a Synchronizer taken between two
// mutations.
type View struct {
	// Identity is the session owner, nil when no session is active.
	Identity *models.Identity

	// Records is the collection, newest first.
	Records []models.Bookmark

	// Loaded is set once the first snapshot of the session has been applied.
	Loaded bool

	// Loading is set while the first snapshot of the session is in flight.
	Loading bool

	// Refreshing is set while a revalidation snapshot is in flight.
	Refreshing bool

	// Creating counts create requests in flight.
	Creating int

	// Deleting holds ids whose delete request is in flight.
	Deleting []string
}

// Busy reports whether any request is in flight.
func (v View) Busy() bool {
	return v.Loading || v.Refreshing || v.Creating > 0 || len(v.Deleting) > 0
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "github.com/MKhiriev/go-bookmarks/models"

// State is the resolution state of a [Machine].
type State int

const (
	StateUnresolved State = iota
	StateResolving
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolving:
		return "resolving"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Terminal reports whether s is Authenticated or Unauthenticated.
func (s State) Terminal() bool {
	return s == StateAuthenticated || s == StateUnauthenticated
}

// Snapshot is a read-only view of a [Machine]. Identity is non-nil exactly
// when State is StateAuthenticated.
type Snapshot struct {
	State    State
	Identity *models.Identity
}

// resolver records which source settled the current epoch.
type resolver int

const (
	resolvedByNone resolver = iota
	resolvedByQuery
	resolvedByEvent
	resolvedByFallback
)

func (r resolver) String() string {
	switch r {
	case resolvedByQuery:
		return "query"
	case resolvedByEvent:
		return "event"
	case resolvedByFallback:
		return "fallback"
	}
	return "none"
}

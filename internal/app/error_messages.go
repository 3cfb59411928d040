// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-bookmarks server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Clients surface them as diagnostics.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation (e.g. missing title or relative URL).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidJSON is returned when the request body is not valid JSON.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// made with a login that is already taken.
	MsgLoginAlreadyExists = "login already exists"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires a user ID
	// but none is present in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgUserNotFound is returned by /api/auth/me when the token refers to
	// an account that no longer exists.
	MsgUserNotFound = "user not found"

	// MsgBookmarkNotFound is returned when an update or delete targets a
	// bookmark that does not exist or belongs to another user.
	MsgBookmarkNotFound = "bookmark not found"

	// MsgBookmarkAlreadyExists is returned when a create collides with an
	// existing bookmark id.
	MsgBookmarkAlreadyExists = "bookmark already exists"

	// MsgIntegrityCheckFailed is returned when the HashSHA256 header does
	// not match the request body.
	MsgIntegrityCheckFailed = "integrity check failed"
)

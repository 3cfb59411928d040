// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Bookmark is a single saved link owned by exactly one user.
//
// ID is a server-assigned UUID and never changes. CreatedAt is set on
// insert and is immutable; the client orders its collection by it.
type Bookmark struct {
	// ID is the globally unique identifier of the record.
	ID string `json:"id"`

	// OwnerID is the user the record belongs to.
	OwnerID int64 `json:"user_id"`

	// Title is the human-readable label shown in lists.
	Title string `json:"title"`

	// URL is the bookmarked address.
	URL string `json:"url"`

	// CreatedAt is the server-assigned creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every server-side edit.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Bookmark model.
func (b Bookmark) TableName() string {
	return "bookmarks"
}

// BookmarkInput carries the user-editable fields of a bookmark.
// It is the payload of create and update requests.
type BookmarkInput struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// BookmarkUpdate identifies a stored bookmark and the new values for its
// user-editable fields.
type BookmarkUpdate struct {
	ID      string
	OwnerID int64
	BookmarkInput
}

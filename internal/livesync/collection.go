// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package livesync

import (
	"slices"

	"github.com/MKhiriev/go-bookmarks/models"
)

// Collection is an ordered set of bookmarks: ids are unique and records are
// sorted by CreatedAt, newest first, with ties kept in insertion order.
//
// Collection is not safe for concurrent use.
type Collection struct {
	items []models.Bookmark
	ids   map[string]struct{}
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{ids: make(map[string]struct{})}
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.items)
}

// Contains reports whether a record with id is present.
func (c *Collection) Contains(id string) bool {
	_, ok := c.ids[id]
	return ok
}

// Get returns the record with id.
func (c *Collection) Get(id string) (models.Bookmark, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return models.Bookmark{}, false
}

// Records returns a copy of the records in order.
func (c *Collection) Records() []models.Bookmark {
	return slices.Clone(c.items)
}

// Replace discards the current contents and loads records. Duplicate ids
// keep their first occurrence.
func (c *Collection) Replace(records []models.Bookmark) {
	c.Clear()
	for _, r := range records {
		c.Insert(r)
	}
}

// Clear removes every record.
func (c *Collection) Clear() {
	c.items = nil
	c.ids = make(map[string]struct{})
}

// Insert adds b at its ordered position. It reports false without changes
// if a record with the same id is already present.
func (c *Collection) Insert(b models.Bookmark) bool {
	if c.Contains(b.ID) {
		return false
	}

	// first record strictly older than b; equal timestamps stay ahead
	pos := len(c.items)
	for i, item := range c.items {
		if item.CreatedAt.Before(b.CreatedAt) {
			pos = i
			break
		}
	}

	c.items = slices.Insert(c.items, pos, b)
	c.ids[b.ID] = struct{}{}
	return true
}

// Update replaces the record with b.ID in place. CreatedAt and OwnerID of
// the stored record are kept so the order cannot change. It reports false
// if the record is unknown.
func (c *Collection) Update(b models.Bookmark) bool {
	i := c.indexOf(b.ID)
	if i < 0 {
		return false
	}

	b.CreatedAt = c.items[i].CreatedAt
	b.OwnerID = c.items[i].OwnerID
	if c.items[i] == b {
		return false
	}
	c.items[i] = b
	return true
}

// Remove deletes the record with id. Removing an absent id is a no-op that
// reports false.
func (c *Collection) Remove(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}

	c.items = slices.Delete(c.items, i, i+1)
	delete(c.ids, id)
	return true
}

// Apply applies a change event and reports whether the collection changed.
func (c *Collection) Apply(event models.ChangeEvent) bool {
	switch event.Kind {
	case models.ChangeCreated:
		return c.Insert(event.Record)
	case models.ChangeUpdated:
		return c.Update(event.Record)
	case models.ChangeDeleted:
		return c.Remove(event.Record.ID)
	}
	return false
}

func (c *Collection) indexOf(id string) int {
	if !c.Contains(id) {
		return -1
	}
	return slices.IndexFunc(c.items, func(b models.Bookmark) bool { return b.ID == id })
}

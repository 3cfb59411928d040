// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package livesync

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func bm(id string, owner int64, minute int) models.Bookmark {
	return models.Bookmark{
		ID:        id,
		OwnerID:   owner,
		Title:     "title " + id,
		URL:       "https://example.com/" + id,
		CreatedAt: t0.Add(time.Duration(minute) * time.Minute),
	}
}

func idsOf(records []models.Bookmark) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func assertOrdered(t *testing.T, records []models.Bookmark) {
	t.Helper()
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		require.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
		if i > 0 {
			require.False(t, records[i-1].CreatedAt.Before(r.CreatedAt),
				"record %d (%s) is newer than its predecessor", i, r.ID)
		}
	}
}

// ── Insert ───────────────────────────────────────────────────────────────────

func TestCollection_InsertKeepsDescendingOrder(t *testing.T) {
	c := NewCollection()
	c.Insert(bm("a", 1, 1))
	c.Insert(bm("c", 1, 3))
	c.Insert(bm("b", 1, 2))
	c.Insert(bm("z", 1, 0))

	assert.Equal(t, []string{"c", "b", "a", "z"}, idsOf(c.Records()))
}

func TestCollection_InsertTiesKeepInsertionOrder(t *testing.T) {
	c := NewCollection()
	c.Insert(bm("first", 1, 5))
	c.Insert(bm("older", 1, 1))
	c.Insert(bm("second", 1, 5))
	c.Insert(bm("third", 1, 5))

	assert.Equal(t, []string{"first", "second", "third", "older"}, idsOf(c.Records()))
}

func TestCollection_InsertDuplicateIgnored(t *testing.T) {
	c := NewCollection()
	require.True(t, c.Insert(bm("a", 1, 1)))

	dup := bm("a", 1, 9)
	dup.Title = "other"
	assert.False(t, c.Insert(dup))

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "title a", got.Title)
	assert.Equal(t, 1, c.Len())
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestCollection_UpdateInPlace(t *testing.T) {
	c := NewCollection()
	c.Replace([]models.Bookmark{bm("b", 1, 2), bm("a", 1, 1)})

	upd := bm("a", 1, 99)
	upd.Title = "renamed"
	require.True(t, c.Update(upd))

	got, _ := c.Get("a")
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, t0.Add(time.Minute), got.CreatedAt, "created_at is immutable")
	assert.Equal(t, []string{"b", "a"}, idsOf(c.Records()))
}

func TestCollection_UpdateUnknownIgnored(t *testing.T) {
	c := NewCollection()
	c.Insert(bm("a", 1, 1))

	assert.False(t, c.Update(bm("x", 1, 1)))
	assert.Equal(t, []string{"a"}, idsOf(c.Records()))
}

func TestCollection_UpdateWithSameValuesReportsNoChange(t *testing.T) {
	c := NewCollection()
	c.Insert(bm("a", 1, 1))

	assert.False(t, c.Update(bm("a", 1, 1)))
}

// ── Remove ───────────────────────────────────────────────────────────────────

func TestCollection_RemoveIsIdempotent(t *testing.T) {
	c := NewCollection()
	c.Replace([]models.Bookmark{bm("b", 1, 2), bm("a", 1, 1)})

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.False(t, c.Remove("never"))
	assert.Equal(t, []string{"b"}, idsOf(c.Records()))
	assert.False(t, c.Contains("a"))
}

// ── Replace / Apply ──────────────────────────────────────────────────────────

func TestCollection_ReplaceSortsAndDedups(t *testing.T) {
	c := NewCollection()
	c.Insert(bm("stale", 1, 50))

	c.Replace([]models.Bookmark{bm("1", 1, 1), bm("2", 1, 2), bm("1", 1, 7)})

	assert.Equal(t, []string{"2", "1"}, idsOf(c.Records()))
	assert.False(t, c.Contains("stale"))
}

func TestCollection_Apply(t *testing.T) {
	c := NewCollection()

	assert.True(t, c.Apply(models.ChangeEvent{Kind: models.ChangeCreated, Record: bm("a", 1, 1)}))
	assert.False(t, c.Apply(models.ChangeEvent{Kind: models.ChangeCreated, Record: bm("a", 1, 1)}))

	upd := bm("a", 1, 1)
	upd.URL = "https://go.dev"
	assert.True(t, c.Apply(models.ChangeEvent{Kind: models.ChangeUpdated, Record: upd}))

	assert.True(t, c.Apply(models.ChangeEvent{Kind: models.ChangeDeleted, Record: models.Bookmark{ID: "a"}}))
	assert.False(t, c.Apply(models.ChangeEvent{Kind: models.ChangeDeleted, Record: models.Bookmark{ID: "a"}}))

	assert.False(t, c.Apply(models.ChangeEvent{Kind: "bogus", Record: bm("b", 1, 1)}))
	assert.Zero(t, c.Len())
}

func TestCollection_RecordsIsACopy(t *testing.T) {
	c := NewCollection()
	c.Insert(bm("a", 1, 1))

	records := c.Records()
	records[0].Title = "mutated"

	got, _ := c.Get("a")
	assert.Equal(t, "title a", got.Title)
}

// ── invariants under random operations ──────────────────────────────────────

func TestCollection_RandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	c := NewCollection()

	for step := range 2000 {
		id := fmt.Sprintf("id-%d", rng.IntN(40))
		b := bm(id, 1, rng.IntN(10))

		switch rng.IntN(4) {
		case 0, 1:
			c.Insert(b)
		case 2:
			c.Update(b)
		case 3:
			before := c.Len()
			removed := c.Remove(id)
			if !removed {
				require.Equal(t, before, c.Len(), "step %d", step)
			}
		}

		assertOrdered(t, c.Records())
	}
}

func TestCollection_DuplicateCreatedEventsKeepOneRecord(t *testing.T) {
	c := NewCollection()
	c.Replace([]models.Bookmark{bm("x", 1, 3)})

	for range 10 {
		c.Apply(models.ChangeEvent{Kind: models.ChangeCreated, Record: bm("x", 1, 3)})
	}

	assert.Equal(t, []string{"x"}, idsOf(c.Records()))
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/broker"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/store"
	"github.com/MKhiriev/go-bookmarks/models"
)

type bookmarkService struct {
	repository store.BookmarkRepository
	broker     broker.Broker
	ids        IDGenerator
	now        func() time.Time

	logger *logger.Logger
}

// NewBookmarkService persists through repository and announces every
// successful mutation on b.
func NewBookmarkService(repository store.BookmarkRepository, b broker.Broker, ids IDGenerator, logger *logger.Logger) BookmarkService {
	return &bookmarkService{
		repository: repository,
		broker:     b,
		ids:        ids,
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		logger:     logger,
	}
}

func (s *bookmarkService) ListBookmarks(ctx context.Context, ownerID int64) ([]models.Bookmark, error) {
	bookmarks, err := s.repository.ListBookmarks(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing bookmarks: %w", err)
	}

	return bookmarks, nil
}

func (s *bookmarkService) CreateBookmark(ctx context.Context, ownerID int64, input models.BookmarkInput) (models.Bookmark, error) {
	now := s.now()
	bookmark := models.Bookmark{
		ID:        s.ids.Generate(),
		OwnerID:   ownerID,
		Title:     input.Title,
		URL:       input.URL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repository.CreateBookmark(ctx, bookmark)
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("error creating bookmark: %w", err)
	}

	s.publish(ctx, models.ChangeCreated, created)
	return created, nil
}

func (s *bookmarkService) UpdateBookmark(ctx context.Context, update models.BookmarkUpdate) (models.Bookmark, error) {
	updated, err := s.repository.UpdateBookmark(ctx, update, s.now())
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("error updating bookmark: %w", err)
	}

	s.publish(ctx, models.ChangeUpdated, updated)
	return updated, nil
}

func (s *bookmarkService) DeleteBookmark(ctx context.Context, ownerID int64, id string) error {
	if err := s.repository.DeleteBookmark(ctx, ownerID, id); err != nil {
		return fmt.Errorf("error deleting bookmark: %w", err)
	}

	s.publish(ctx, models.ChangeDeleted, models.Bookmark{ID: id, OwnerID: ownerID})
	return nil
}

// publish announces a committed change. The mutation already succeeded, so a
// broker failure is logged and clients converge on their next revalidation.
func (s *bookmarkService) publish(ctx context.Context, kind models.ChangeKind, record models.Bookmark) {
	event := models.ChangeEvent{Kind: kind, Record: record, At: s.now()}
	if err := s.broker.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("kind", string(kind)).
			Str("id", record.ID).
			Msg("error publishing change event")
	}
}

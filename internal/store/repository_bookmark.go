// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/models"
)

type bookmarkRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewBookmarkRepository constructs a [BookmarkRepository] over the
// "bookmarks" table.
func NewBookmarkRepository(db *DB, logger *logger.Logger) BookmarkRepository {
	logger.Debug().Msg("creating bookmark repository")
	return &bookmarkRepository{
		db:     db,
		logger: logger,
	}
}

func (r *bookmarkRepository) ListBookmarks(ctx context.Context, ownerID int64) ([]models.Bookmark, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.listBookmarksQuery(ownerID)
	if err != nil {
		return nil, buildErr(err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookmarkRepository.ListBookmarks").Msg("error selecting bookmarks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	bookmarks := make([]models.Bookmark, 0)
	for rows.Next() {
		var b models.Bookmark
		if err = rows.Scan(&b.ID, &b.OwnerID, &b.Title, &b.URL, &b.CreatedAt, &b.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*bookmarkRepository.ListBookmarks").Msg("error scanning bookmark")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		bookmarks = append(bookmarks, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return bookmarks, nil
}

func (r *bookmarkRepository) GetBookmark(ctx context.Context, ownerID int64, id string) (models.Bookmark, error) {
	query, args, err := r.db.getBookmarkQuery(ownerID, id)
	if err != nil {
		return models.Bookmark{}, buildErr(err)
	}

	return r.queryOne(ctx, "*bookmarkRepository.GetBookmark", query, args)
}

// CreateBookmark inserts b as given. The caller assigns the id and timestamps.
func (r *bookmarkRepository) CreateBookmark(ctx context.Context, b models.Bookmark) (models.Bookmark, error) {
	query, args, err := r.db.createBookmarkQuery(b)
	if err != nil {
		return models.Bookmark{}, buildErr(err)
	}

	created, err := r.queryOne(ctx, "*bookmarkRepository.CreateBookmark", query, args)
	if err != nil && r.db.errorClassificator.IsUniqueViolation(err) {
		return models.Bookmark{}, ErrBookmarkAlreadyExists
	}

	return created, err
}

func (r *bookmarkRepository) UpdateBookmark(ctx context.Context, update models.BookmarkUpdate, updatedAt time.Time) (models.Bookmark, error) {
	query, args, err := r.db.updateBookmarkQuery(update, updatedAt)
	if err != nil {
		return models.Bookmark{}, buildErr(err)
	}

	return r.queryOne(ctx, "*bookmarkRepository.UpdateBookmark", query, args)
}

// DeleteBookmark removes the owner's bookmark or returns [ErrBookmarkNotFound].
func (r *bookmarkRepository) DeleteBookmark(ctx context.Context, ownerID int64, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.deleteBookmarkQuery(ownerID, id)
	if err != nil {
		return buildErr(err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookmarkRepository.DeleteBookmark").Msg("error deleting bookmark")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrBookmarkNotFound
	}

	return nil
}

// queryOne runs a single-row query returning bookmarkColumns.
// sql.ErrNoRows becomes [ErrBookmarkNotFound]; driver errors are returned
// unwrapped so callers can classify them.
func (r *bookmarkRepository) queryOne(ctx context.Context, fn, query string, args []any) (models.Bookmark, error) {
	var b models.Bookmark
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&b.ID, &b.OwnerID, &b.Title, &b.URL, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bookmark{}, ErrBookmarkNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error querying bookmark")
		return models.Bookmark{}, err
	}

	return b, nil
}

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-bookmarks/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// BookmarkRepository persists bookmarks. Every method is scoped to an owner;
// a record of another owner behaves as if it did not exist.
type BookmarkRepository interface {
	// ListBookmarks returns the owner's bookmarks ordered by created_at
	// descending, newest first.
	ListBookmarks(ctx context.Context, ownerID int64) ([]models.Bookmark, error)
	GetBookmark(ctx context.Context, ownerID int64, id string) (models.Bookmark, error)
	CreateBookmark(ctx context.Context, bookmark models.Bookmark) (models.Bookmark, error)
	UpdateBookmark(ctx context.Context, update models.BookmarkUpdate, updatedAt time.Time) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, ownerID int64, id string) error
}

// ErrorClassificator maps a driver error to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool
}

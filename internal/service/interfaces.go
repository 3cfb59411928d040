package service

import (
	"context"

	"github.com/MKhiriev/go-bookmarks/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=BookmarkServiceWrapper,IDGenerator

// BookmarkService owns the bookmark lifecycle on the server: persistence and
// change-event publication. Every method is scoped to one owner.
type BookmarkService interface {
	ListBookmarks(ctx context.Context, ownerID int64) ([]models.Bookmark, error)
	CreateBookmark(ctx context.Context, ownerID int64, input models.BookmarkInput) (models.Bookmark, error)
	UpdateBookmark(ctx context.Context, update models.BookmarkUpdate) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, ownerID int64, id string) error
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	FindUser(ctx context.Context, userID int64) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// BookmarkServiceWrapper defines middleware composition for BookmarkService.
// Implementations wrap an existing BookmarkService to add behavior such as
// validation.
type BookmarkServiceWrapper interface {
	Wrap(BookmarkService) BookmarkService
}

// IDGenerator issues bookmark ids.
type IDGenerator interface {
	Generate() string
}

package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bookmarks/models"
)

const (
	usersTable     = "users"
	bookmarksTable = "bookmarks"
)

var (
	userColumns     = []string{"user_id", "login", "name", "password_hash", "created_at"}
	bookmarkColumns = []string{"id", "user_id", "title", "url", "created_at", "updated_at"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func (db *DB) createUserQuery(user models.User) (string, []any, error) {
	return db.builder.
		Insert(usersTable).
		Columns("login", "name", "password_hash", "created_at").
		Values(user.Login, user.Name, user.PasswordHash, user.CreatedAt).
		Suffix(returning(userColumns)).
		ToSql()
}

func (db *DB) findUserQuery(where squirrel.Eq) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
}

func (db *DB) listBookmarksQuery(ownerID int64) (string, []any, error) {
	return db.builder.
		Select(bookmarkColumns...).
		From(bookmarksTable).
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
}

func (db *DB) getBookmarkQuery(ownerID int64, id string) (string, []any, error) {
	return db.builder.
		Select(bookmarkColumns...).
		From(bookmarksTable).
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		ToSql()
}

func (db *DB) createBookmarkQuery(b models.Bookmark) (string, []any, error) {
	return db.builder.
		Insert(bookmarksTable).
		Columns(bookmarkColumns...).
		Values(b.ID, b.OwnerID, b.Title, b.URL, b.CreatedAt, b.UpdatedAt).
		Suffix(returning(bookmarkColumns)).
		ToSql()
}

func (db *DB) updateBookmarkQuery(update models.BookmarkUpdate, updatedAt time.Time) (string, []any, error) {
	return db.builder.
		Update(bookmarksTable).
		Set("title", update.Title).
		Set("url", update.URL).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": update.ID, "user_id": update.OwnerID}).
		Suffix(returning(bookmarkColumns)).
		ToSql()
}

func (db *DB) deleteBookmarkQuery(ownerID int64, id string) (string, []any, error) {
	return db.builder.
		Delete(bookmarksTable).
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		ToSql()
}

// buildErr tags a squirrel failure with [ErrBuildingSQLQuery].
func buildErr(err error) error {
	return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
}

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
)

// Storages groups the server repositories sharing one connection.
type Storages struct {
	UserRepository     UserRepository
	BookmarkRepository BookmarkRepository

	db *DB
}

// NewStorages connects to the configured database, applies migrations and
// builds the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, err
	}

	return newStorages(db, log), nil
}

func newStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		BookmarkRepository: NewBookmarkRepository(db, log),
		db:                 db,
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}

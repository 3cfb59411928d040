// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/migrations"
)

const (
	driverPostgres = "pgx"
	driverSQLite   = "sqlite3"
)

// DB is a database handle bound to one driver. It carries the query builder
// with the driver's placeholder format and the driver's error classifier.
type DB struct {
	*sql.DB
	driver             string
	builder            squirrel.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens a connection for cfg.Driver. An empty driver selects Postgres.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case driverPostgres, "":
		return NewConnectPostgres(ctx, cfg, log)
	case driverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func newDB(conn *sql.DB, driver string, classifier ErrorClassificator, log *logger.Logger) *DB {
	var placeholder squirrel.PlaceholderFormat = squirrel.Dollar
	if driver == driverSQLite {
		placeholder = squirrel.Question
	}

	return &DB{
		DB:                 conn,
		driver:             driver,
		builder:            squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Migrate applies the embedded schema for the connection's driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

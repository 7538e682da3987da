// Package sqlite stores collections as JSON documents in a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// Blank import registers the sqlite3 database/sql driver
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"shelfkeeper/internal/infrastructure/migration"
)

// ErrInMemory is returned for paths that would open a private in-memory
// database: the migration connection and the store connection would each
// see their own empty database.
var ErrInMemory = errors.New("sqlite: in-memory databases are not supported")

type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

// New migrates the database file at path and opens it. One connection is
// kept open so every write is serialised by SQLite itself.
func New(path string, engine migration.MigrationEngine, log *slog.Logger) (*Storage, error) {
	if path == "" || strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory") {
		return nil, fmt.Errorf("%w: %q", ErrInMemory, path)
	}

	mg := migration.NewMigration("sqlite", migration.SQLiteURL(path), engine)
	if err := mg.Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &Storage{db: db, log: log.With("component", "sqlite_storage")}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

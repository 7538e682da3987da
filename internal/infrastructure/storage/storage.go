// Package storage opens the configured collection store and owns its lifecycle.
package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"shelfkeeper/internal/config"
	"shelfkeeper/internal/domain/book"
	"shelfkeeper/internal/domain/recipe"
	"shelfkeeper/internal/domain/resource"
	"shelfkeeper/internal/domain/store"
	"shelfkeeper/internal/domain/user"
	"shelfkeeper/internal/infrastructure/migration"
	"shelfkeeper/internal/infrastructure/storage/memory"
	"shelfkeeper/internal/infrastructure/storage/postgres"
	"shelfkeeper/internal/infrastructure/storage/seed"
	"shelfkeeper/internal/infrastructure/storage/sqlite"
)

// Collection names shared by the SQL drivers.
const (
	BooksCollection   = "books"
	RecipesCollection = "recipes"
	UsersCollection   = "users"
	MetaCollection    = "meta"
)

type Storage struct {
	Books   store.Collection[book.Book]
	Recipes store.Collection[recipe.Recipe]
	Users   user.Repository

	meta  store.Collection[seed.Marker]
	ping  func(ctx context.Context) error
	close func() error
}

// New opens the driver named by cfg.Storage.Driver. The caller must Close it.
func New(ctx context.Context, cfg *config.Config, engine migration.MigrationEngine, log *slog.Logger) (*Storage, error) {
	log = log.With("driver", cfg.Storage.Driver)

	switch cfg.Storage.Driver {
	case config.DriverMemory, "":
		log.Info("using in-memory storage")
		return NewMemory(), nil

	case config.DriverSQLite:
		s, err := sqlite.New(cfg.Storage.SQLitePath, engine, log)
		if err != nil {
			return nil, err
		}
		log.Info("sqlite storage opened", "path", cfg.Storage.SQLitePath)
		return &Storage{
			Books:   sqlite.NewCollection[book.Book](s, BooksCollection, resource.IDField),
			Recipes: sqlite.NewCollection[recipe.Recipe](s, RecipesCollection, resource.IDField),
			Users:   sqlite.NewCollection[user.Account](s, UsersCollection, user.EmailField),
			meta:    sqlite.NewCollection[seed.Marker](s, MetaCollection, seed.MarkerField),
			ping:    s.Ping,
			close:   s.Close,
		}, nil

	case config.DriverPostgres:
		s, err := postgres.New(ctx, cfg.Storage.DatabaseURI, engine, log)
		if err != nil {
			return nil, err
		}
		log.Info("postgres storage opened")
		return &Storage{
			Books:   postgres.NewCollection[book.Book](s, BooksCollection, resource.IDField),
			Recipes: postgres.NewCollection[recipe.Recipe](s, RecipesCollection, resource.IDField),
			Users:   postgres.NewCollection[user.Account](s, UsersCollection, user.EmailField),
			meta:    postgres.NewCollection[seed.Marker](s, MetaCollection, seed.MarkerField),
			ping:    s.Ping,
			close:   s.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// NewMemory returns empty in-process collections.
func NewMemory() *Storage {
	return &Storage{
		Books:   memory.NewCollection[book.Book](resource.IDField),
		Recipes: memory.NewCollection[recipe.Recipe](resource.IDField),
		Users:   memory.NewCollection[user.Account](user.EmailField),
		meta:    memory.NewCollection[seed.Marker](seed.MarkerField),
		ping:    func(context.Context) error { return nil },
		close:   func() error { return nil },
	}
}

// Seed applies the bundled fixtures the first time it runs against a store,
// hashing user passwords with hasher.
func (s *Storage) Seed(ctx context.Context, hasher user.Hasher, log *slog.Logger) error {
	f, err := seed.Load()
	if err != nil {
		return err
	}
	return f.Apply(ctx, seed.Target{Books: s.Books, Recipes: s.Recipes, Users: s.Users, Markers: s.meta}, hasher, log)
}

// Ping checks that the backing database answers.
func (s *Storage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Storage) Close() error {
	return s.close()
}

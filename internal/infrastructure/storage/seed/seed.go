// Package seed loads the bundled sample books, recipes and users.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"shelfkeeper/internal/domain/book"
	"shelfkeeper/internal/domain/recipe"
	"shelfkeeper/internal/domain/store"
	"shelfkeeper/internal/domain/user"
)

//go:embed fixtures.yaml
var fixtures []byte

type Fixtures struct {
	Books   []book.Book     `yaml:"books"`
	Recipes []recipe.Recipe `yaml:"recipes"`
	Users   []User          `yaml:"users"`
}

type User struct {
	Email             string                  `yaml:"email"`
	Password          string                  `yaml:"password"`
	SecurityQuestions []user.SecurityQuestion `yaml:"securityQuestions"`
}

// MarkerField is the key field of the marker collection.
const MarkerField = "name"

const fixturesMarker = "fixtures"

// Marker records that a fixture set has been written to a store.
type Marker struct {
	Name      string    `json:"name"`
	AppliedAt time.Time `json:"appliedAt"`
}

func (m Marker) DocumentKey() string { return m.Name }

func (m Marker) DocumentFields() map[string]any {
	return map[string]any{MarkerField: m.Name}
}

// Target is the set of collections fixtures are written to. Markers keeps
// the applied marker next to the data.
type Target struct {
	Books   store.Collection[book.Book]
	Recipes store.Collection[recipe.Recipe]
	Users   store.Collection[user.Account]
	Markers store.Collection[Marker]
}

// Load parses the embedded fixtures.
func Load() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(fixtures, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Apply inserts every fixture into t once per store. After the first run a
// marker is left behind and later calls do nothing, so records deleted
// through the API stay deleted across restarts.
func (f *Fixtures) Apply(ctx context.Context, t Target, hasher user.Hasher, log *slog.Logger) error {
	log = log.With("component", "seed")

	_, err := t.Markers.FindOne(ctx, store.Eq(MarkerField, fixturesMarker))
	switch {
	case err == nil:
		log.Debug("fixtures already applied")
		return nil
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("read seed marker: %w", err)
	}

	for _, b := range f.Books {
		if err := insert(ctx, t.Books, b); err != nil {
			return fmt.Errorf("seed book %d: %w", b.ID, err)
		}
	}
	for _, r := range f.Recipes {
		if err := insert(ctx, t.Recipes, r); err != nil {
			return fmt.Errorf("seed recipe %d: %w", r.ID, err)
		}
	}

	now := time.Now().UTC()
	for _, u := range f.Users {
		hash, err := hasher.Hash(u.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		account := user.Account{
			Email:             u.Email,
			PasswordHash:      hash,
			SecurityQuestions: u.SecurityQuestions,
			CreatedAt:         now,
		}
		if err := insert(ctx, t.Users, account); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	// Written last: a run cut short is completed on the next start.
	if err := insert(ctx, t.Markers, Marker{Name: fixturesMarker, AppliedAt: now}); err != nil {
		return fmt.Errorf("write seed marker: %w", err)
	}

	log.Info("fixtures applied", "books", len(f.Books), "recipes", len(f.Recipes), "users", len(f.Users))
	return nil
}

func insert[T store.Document](ctx context.Context, c store.Collection[T], doc T) error {
	if _, err := c.InsertOne(ctx, doc); err != nil && !errors.Is(err, store.ErrConflict) {
		return err
	}
	return nil
}

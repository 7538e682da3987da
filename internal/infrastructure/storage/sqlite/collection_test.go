package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"shelfkeeper/internal/domain/store"
	"shelfkeeper/internal/infrastructure/migration"
)

type note struct {
	ID   int    `json:"id"`
	Tag  string `json:"tag"`
	Body string `json:"body"`
}

func (n note) DocumentKey() string { return strconv.Itoa(n.ID) }

func (n note) DocumentFields() map[string]any {
	return map[string]any{"id": n.ID, "tag": n.Tag, "body": n.Body}
}

func openStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "shelf.db"), migration.DefaultEngine, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seeded(t *testing.T) *Collection[note] {
	t.Helper()
	c := NewCollection[note](openStorage(t), "notes", "id")
	for _, n := range []note{{1, "a", "one"}, {2, "b", "two"}, {3, "b", "three"}} {
		_, err := c.InsertOne(context.Background(), n)
		require.NoError(t, err)
	}
	return c
}

func TestCollection_FindAll(t *testing.T) {
	ctx := context.Background()
	s := openStorage(t)

	all, err := NewCollection[note](s, "empty", "id").FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	c := NewCollection[note](s, "notes", "id")
	for _, n := range []note{{3, "x", "c"}, {1, "x", "a"}, {2, "x", "b"}} {
		_, err := c.InsertOne(ctx, n)
		require.NoError(t, err)
	}
	all, err = c.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []note{{3, "x", "c"}, {1, "x", "a"}, {2, "x", "b"}}, all, "insertion order")
}

func TestCollection_FindOne(t *testing.T) {
	ctx := context.Background()
	c := seeded(t)

	n, err := c.FindOne(ctx, store.Eq("id", 2))
	require.NoError(t, err)
	assert.Equal(t, "two", n.Body)

	n, err = c.FindOne(ctx, store.Eq("tag", "b"))
	require.NoError(t, err)
	assert.Equal(t, 2, n.ID, "first match in insertion order")

	_, err = c.FindOne(ctx, store.Eq("id", 42))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCollection_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := openStorage(t)
	books := NewCollection[note](s, "books", "id")
	recipes := NewCollection[note](s, "recipes", "id")

	_, err := books.InsertOne(ctx, note{ID: 1, Body: "book"})
	require.NoError(t, err)
	_, err = recipes.InsertOne(ctx, note{ID: 1, Body: "recipe"})
	require.NoError(t, err, "same key in another collection")

	n, err := recipes.FindOne(ctx, store.Eq("id", 1))
	require.NoError(t, err)
	assert.Equal(t, "recipe", n.Body)
}

func TestCollection_InsertOne_Conflict(t *testing.T) {
	ctx := context.Background()
	c := seeded(t)

	_, err := c.InsertOne(ctx, note{ID: 1, Body: "dup"})
	assert.ErrorIs(t, err, store.ErrConflict)

	n, err := c.FindOne(ctx, store.Eq("id", 1))
	require.NoError(t, err)
	assert.Equal(t, "one", n.Body)
}

func TestCollection_UpdateOne(t *testing.T) {
	ctx := context.Background()
	c := seeded(t)

	updated, err := c.UpdateOne(ctx, store.Eq("id", 2), func(cur note) (note, error) {
		cur.Body = "deux"
		return cur, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "deux", updated.Body)

	n, err := c.FindOne(ctx, store.Eq("id", 2))
	require.NoError(t, err)
	assert.Equal(t, "deux", n.Body)

	_, err = c.UpdateOne(ctx, store.Eq("id", 9), func(cur note) (note, error) { return cur, nil })
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = c.UpdateOne(ctx, store.Eq("id", 2), func(cur note) (note, error) {
		cur.ID = 20
		return cur, nil
	})
	assert.ErrorIs(t, err, store.ErrKeyChanged)

	abort := errors.New("abort")
	_, err = c.UpdateOne(ctx, store.Eq("id", 2), func(cur note) (note, error) {
		cur.Body = "lost"
		return cur, abort
	})
	assert.ErrorIs(t, err, abort)

	n, err = c.FindOne(ctx, store.Eq("id", 2))
	require.NoError(t, err)
	assert.Equal(t, "deux", n.Body, "aborted mutation leaves the document untouched")
}

func TestCollection_DeleteOne(t *testing.T) {
	ctx := context.Background()
	c := seeded(t)

	require.NoError(t, c.DeleteOne(ctx, store.Eq("tag", "b")))
	assert.ErrorIs(t, c.DeleteOne(ctx, store.Eq("id", 2)), store.ErrNotFound)

	all, err := c.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []note{{1, "a", "one"}, {3, "b", "three"}}, all)
}

func TestCollection_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[note](openStorage(t), "counters", "id")
	_, err := c.InsertOne(ctx, note{ID: 1, Body: "0"})
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.UpdateOne(ctx, store.Eq("id", 1), func(cur note) (note, error) {
				v, _ := strconv.Atoi(cur.Body)
				cur.Body = strconv.Itoa(v + 1)
				return cur, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := c.FindOne(ctx, store.Eq("id", 1))
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(workers), n.Body)
}

func TestStorage_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shelf.db")

	s, err := New(path, migration.DefaultEngine, slog.Default())
	require.NoError(t, err)
	_, err = NewCollection[note](s, "notes", "id").InsertOne(ctx, note{ID: 7, Body: "kept"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(path, migration.DefaultEngine, slog.Default())
	require.NoError(t, err)
	defer s.Close()

	n, err := NewCollection[note](s, "notes", "id").FindOne(ctx, store.Eq("id", 7))
	require.NoError(t, err)
	assert.Equal(t, "kept", n.Body)
}

func TestNew_RejectsInMemory(t *testing.T) {
	for _, path := range []string{"", ":memory:", "file::memory:?cache=shared", "file:shelf?mode=memory"} {
		_, err := New(path, migration.DefaultEngine, slog.Default())
		assert.ErrorIs(t, err, ErrInMemory, path)
	}
}

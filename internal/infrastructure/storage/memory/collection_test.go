package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"shelfkeeper/internal/domain/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type note struct {
	ID   int
	Tag  string
	Body string
}

func (n note) DocumentKey() string { return strconv.Itoa(n.ID) }

func (n note) DocumentFields() map[string]any {
	return map[string]any{"id": n.ID, "tag": n.Tag, "body": n.Body}
}

func seeded(t *testing.T) *Collection[note] {
	t.Helper()
	c := NewCollection[note]("id")
	for _, n := range []note{{1, "a", "one"}, {2, "b", "two"}, {3, "b", "three"}} {
		_, err := c.InsertOne(context.Background(), n)
		require.NoError(t, err)
	}
	return c
}

func TestCollection_FindAll(t *testing.T) {
	ctx := context.Background()

	empty := NewCollection[note]("id")
	all, err := empty.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	all, err = seeded(t).FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})
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

	_, err = c.FindOne(ctx, store.Eq("tag", "b").And("body", "one"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCollection_InsertOne_Conflict(t *testing.T) {
	c := seeded(t)

	_, err := c.InsertOne(context.Background(), note{ID: 1, Body: "dup"})
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.Equal(t, 3, c.Len())

	n, err := c.FindOne(context.Background(), store.Eq("id", 1))
	require.NoError(t, err)
	assert.Equal(t, "one", n.Body)
}

func TestCollection_UpdateOne(t *testing.T) {
	ctx := context.Background()
	c := seeded(t)

	updated, err := c.UpdateOne(ctx, store.Eq("id", 1), func(cur note) (note, error) {
		cur.Body = "uno"
		return cur, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "uno", updated.Body)

	_, err = c.UpdateOne(ctx, store.Eq("id", 9), func(cur note) (note, error) { return cur, nil })
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = c.UpdateOne(ctx, store.Eq("id", 1), func(cur note) (note, error) {
		cur.ID = 7
		return cur, nil
	})
	assert.ErrorIs(t, err, store.ErrKeyChanged)

	boom := errors.New("boom")
	_, err = c.UpdateOne(ctx, store.Eq("id", 1), func(cur note) (note, error) { return cur, boom })
	assert.ErrorIs(t, err, boom)

	n, err := c.FindOne(ctx, store.Eq("id", 1))
	require.NoError(t, err)
	assert.Equal(t, "uno", n.Body, "failed mutations leave the document untouched")
}

func TestCollection_DeleteOne(t *testing.T) {
	ctx := context.Background()
	c := seeded(t)

	require.NoError(t, c.DeleteOne(ctx, store.Eq("id", 2)))
	_, err := c.FindOne(ctx, store.Eq("id", 2))
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, c.DeleteOne(ctx, store.Eq("id", 2)), store.ErrNotFound)

	all, err := c.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, []int{all[0].ID, all[1].ID})

	_, err = c.InsertOne(ctx, note{ID: 2, Body: "again"})
	assert.NoError(t, err, "a deleted key can be reused")
}

func TestCollection_ConcurrentInsertsOfSameKey(t *testing.T) {
	c := NewCollection[note]("id")
	ctx := context.Background()

	const workers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.InsertOne(ctx, note{ID: 1}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, c.Len())
}

func TestCollection_ConcurrentUpdatesAreSerialised(t *testing.T) {
	c := NewCollection[note]("id")
	ctx := context.Background()
	_, err := c.InsertOne(ctx, note{ID: 1, Body: ""})
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.UpdateOne(ctx, store.Eq("id", 1), func(cur note) (note, error) {
				cur.Body += "x"
				return cur, nil
			})
		}()
	}
	wg.Wait()

	n, err := c.FindOne(ctx, store.Eq("id", 1))
	require.NoError(t, err)
	assert.Len(t, n.Body, workers, "no update was lost")
}

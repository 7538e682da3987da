// Package memory is the in-process collection store. Documents live in a map
// plus an insertion-order index; one RWMutex per collection serialises writes.
package memory

import (
	"context"
	"sync"

	"shelfkeeper/internal/domain/store"
)

type Collection[T store.Document] struct {
	mu       sync.RWMutex
	keyField string
	docs     map[string]T
	order    []string
}

var _ store.Collection[store.Document] = (*Collection[store.Document])(nil)

// NewCollection creates an empty collection whose unique key is keyField.
func NewCollection[T store.Document](keyField string) *Collection[T] {
	return &Collection[T]{
		keyField: keyField,
		docs:     make(map[string]T),
	}
}

func (c *Collection[T]) FindAll(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.docs[k])
	}
	return out, nil
}

func (c *Collection[T]) FindOne(_ context.Context, f store.Filter) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key, ok := c.locate(f)
	if !ok {
		var zero T
		return zero, store.ErrNotFound
	}
	return c.docs[key], nil
}

func (c *Collection[T]) InsertOne(_ context.Context, doc T) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := doc.DocumentKey()
	if _, exists := c.docs[key]; exists {
		return "", store.ErrConflict
	}
	c.docs[key] = doc
	c.order = append(c.order, key)
	return key, nil
}

func (c *Collection[T]) UpdateOne(_ context.Context, f store.Filter, m store.Mutation[T]) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	key, ok := c.locate(f)
	if !ok {
		return zero, store.ErrNotFound
	}

	next, err := m(c.docs[key])
	if err != nil {
		return zero, err
	}
	if next.DocumentKey() != key {
		return zero, store.ErrKeyChanged
	}
	c.docs[key] = next
	return next, nil
}

func (c *Collection[T]) DeleteOne(_ context.Context, f store.Filter) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, ok := c.locate(f)
	if !ok {
		return store.ErrNotFound
	}
	delete(c.docs, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports the number of stored documents.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// locate must be called with mu held.
func (c *Collection[T]) locate(f store.Filter) (string, bool) {
	if key, ok := f.KeyLookup(c.keyField); ok {
		_, exists := c.docs[key]
		return key, exists
	}
	for _, k := range c.order {
		if f.Match(c.docs[k]) {
			return k, true
		}
	}
	return "", false
}

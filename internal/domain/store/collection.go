// Package store defines the keyed collection contract every storage driver implements.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrConflict   = errors.New("document already exists")
	ErrKeyChanged = errors.New("document key is immutable")
)

// Document is anything a Collection can hold. DocumentKey is the unique key
// of the collection; DocumentFields exposes the fields filters may match on.
type Document interface {
	DocumentKey() string
	DocumentFields() map[string]any
}

// Mutation receives the current document and returns its replacement.
// Returning an error aborts the update and leaves the document untouched.
type Mutation[T Document] func(current T) (T, error)

// Collection is a keyed set of documents.
type Collection[T Document] interface {
	// FindAll returns every document in insertion order.
	FindAll(ctx context.Context) ([]T, error)
	// FindOne returns the first document, in insertion order, matching f.
	FindOne(ctx context.Context, f Filter) (T, error)
	// InsertOne stores doc and returns its key. ErrConflict if the key is taken.
	InsertOne(ctx context.Context, doc T) (string, error)
	// UpdateOne applies m to the document matching f atomically.
	UpdateOne(ctx context.Context, f Filter, m Mutation[T]) (T, error)
	// DeleteOne removes the document matching f.
	DeleteOne(ctx context.Context, f Filter) error
}

// Condition is a single field equality.
type Condition struct {
	Field string
	Value any
}

// Filter is a conjunction of field equalities.
type Filter []Condition

// Eq starts a filter with one condition.
func Eq(field string, value any) Filter {
	return Filter{{Field: field, Value: value}}
}

// And adds a condition to f.
func (f Filter) And(field string, value any) Filter {
	return append(f, Condition{Field: field, Value: value})
}

// Match reports whether doc satisfies every condition of f. Values are
// compared by their textual form so an int id matches a decoded float64.
func (f Filter) Match(doc Document) bool {
	fields := doc.DocumentFields()
	for _, c := range f {
		v, ok := fields[c.Field]
		if !ok || Text(v) != Text(c.Value) {
			return false
		}
	}
	return true
}

// KeyLookup returns the key when f is a single equality on keyField.
func (f Filter) KeyLookup(keyField string) (string, bool) {
	if len(f) != 1 || f[0].Field != keyField {
		return "", false
	}
	return Text(f[0].Value), true
}

func (f Filter) String() string {
	parts := make([]string, 0, len(f))
	for _, c := range f {
		parts = append(parts, fmt.Sprintf("%s=%v", c.Field, c.Value))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// Text is the canonical comparison form of a filter value.
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
	}
	return fmt.Sprint(v)
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"shelfkeeper/internal/domain/store"
)

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Collection is one named collection inside the documents table.
type Collection[T store.Document] struct {
	db       *sql.DB
	name     string
	keyField string
	log      *slog.Logger
}

// NewCollection binds the collection name to storage s.
func NewCollection[T store.Document](s *Storage, name, keyField string) *Collection[T] {
	return &Collection[T]{
		db:       s.db,
		name:     name,
		keyField: keyField,
		log:      s.log.With("collection", name),
	}
}

func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	const query = `SELECT doc_key, body FROM documents WHERE collection = ? ORDER BY seq`

	rows, err := c.db.QueryContext(ctx, query, c.name)
	if err != nil {
		c.log.Error("failed to list documents", "error", err)
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		_, doc, err := c.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (c *Collection[T]) FindOne(ctx context.Context, f store.Filter) (T, error) {
	_, doc, err := c.locate(ctx, c.db, f)
	return doc, err
}

func (c *Collection[T]) InsertOne(ctx context.Context, doc T) (string, error) {
	const query = `INSERT INTO documents (collection, doc_key, body) VALUES (?, ?, ?)`

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode %s document: %w", c.name, err)
	}

	key := doc.DocumentKey()
	if _, err := c.db.ExecContext(ctx, query, c.name, key, string(body)); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return "", store.ErrConflict
		}
		c.log.Error("failed to insert document", "key", key, "error", err)
		return "", fmt.Errorf("insert %s: %w", c.name, err)
	}
	return key, nil
}

func (c *Collection[T]) UpdateOne(ctx context.Context, f store.Filter, m store.Mutation[T]) (T, error) {
	const query = `UPDATE documents SET body = ?, updated_at = CURRENT_TIMESTAMP WHERE collection = ? AND doc_key = ?`

	var zero T
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	key, cur, err := c.locate(ctx, tx, f)
	if err != nil {
		return zero, err
	}

	next, err := m(cur)
	if err != nil {
		return zero, err
	}
	if next.DocumentKey() != key {
		return zero, store.ErrKeyChanged
	}

	body, err := json.Marshal(next)
	if err != nil {
		return zero, fmt.Errorf("encode %s document: %w", c.name, err)
	}
	if _, err := tx.ExecContext(ctx, query, string(body), c.name, key); err != nil {
		c.log.Error("failed to update document", "key", key, "error", err)
		return zero, fmt.Errorf("update %s: %w", c.name, err)
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit: %w", err)
	}
	return next, nil
}

func (c *Collection[T]) DeleteOne(ctx context.Context, f store.Filter) error {
	const query = `DELETE FROM documents WHERE collection = ? AND doc_key = ?`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	key, _, err := c.locate(ctx, tx, f)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, c.name, key); err != nil {
		c.log.Error("failed to delete document", "key", key, "error", err)
		return fmt.Errorf("delete %s: %w", c.name, err)
	}
	return tx.Commit()
}

// locate returns the first document in insertion order matching f. A filter
// on the key alone is answered by the unique index.
func (c *Collection[T]) locate(ctx context.Context, q querier, f store.Filter) (string, T, error) {
	var zero T

	query := `SELECT doc_key, body FROM documents WHERE collection = ? ORDER BY seq`
	args := []any{c.name}
	if key, ok := f.KeyLookup(c.keyField); ok {
		query = `SELECT doc_key, body FROM documents WHERE collection = ? AND doc_key = ?`
		args = append(args, key)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		c.log.Error("failed to find document", "filter", f.String(), "error", err)
		return "", zero, fmt.Errorf("find %s: %w", c.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		key, doc, err := c.scan(rows)
		if err != nil {
			return "", zero, err
		}
		if f.Match(doc) {
			return key, doc, nil
		}
	}
	if err := rows.Err(); err != nil {
		return "", zero, fmt.Errorf("find %s: %w", c.name, err)
	}
	return "", zero, store.ErrNotFound
}

func (c *Collection[T]) scan(rows *sql.Rows) (string, T, error) {
	var (
		key  string
		body string
		doc  T
	)
	if err := rows.Scan(&key, &body); err != nil {
		return "", doc, fmt.Errorf("scan %s: %w", c.name, err)
	}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return "", doc, fmt.Errorf("decode %s document %s: %w", c.name, key, err)
	}
	return key, doc, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"shelfkeeper/internal/domain/store"
)

const uniqueViolation = "23505"

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Collection is one named collection inside the documents table.
type Collection[T store.Document] struct {
	pool     *pgxpool.Pool
	name     string
	keyField string
	log      *slog.Logger
}

func NewCollection[T store.Document](s *Storage, name, keyField string) *Collection[T] {
	return &Collection[T]{
		pool:     s.pool,
		name:     name,
		keyField: keyField,
		log:      s.log.With("collection", name),
	}
}

func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	const query = `SELECT doc_key, body FROM documents WHERE collection = $1 ORDER BY seq`

	rows, err := c.pool.Query(ctx, query, c.name)
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
	_, doc, err := c.locate(ctx, c.pool, f, false)
	return doc, err
}

func (c *Collection[T]) InsertOne(ctx context.Context, doc T) (string, error) {
	const query = `INSERT INTO documents (collection, doc_key, body) VALUES ($1, $2, $3)`

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode %s document: %w", c.name, err)
	}

	key := doc.DocumentKey()
	if _, err := c.pool.Exec(ctx, query, c.name, key, body); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", store.ErrConflict
		}
		c.log.Error("failed to insert document", "key", key, "error", err)
		return "", fmt.Errorf("insert %s: %w", c.name, err)
	}
	return key, nil
}

// UpdateOne locks the matched row with SELECT ... FOR UPDATE so the
// mutation sees the committed state and concurrent writers queue behind it.
func (c *Collection[T]) UpdateOne(ctx context.Context, f store.Filter, m store.Mutation[T]) (T, error) {
	const query = `UPDATE documents SET body = $1, updated_at = NOW() WHERE collection = $2 AND doc_key = $3`

	var zero T
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	key, cur, err := c.locate(ctx, tx, f, true)
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
	if _, err := tx.Exec(ctx, query, body, c.name, key); err != nil {
		c.log.Error("failed to update document", "key", key, "error", err)
		return zero, fmt.Errorf("update %s: %w", c.name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("commit: %w", err)
	}
	return next, nil
}

func (c *Collection[T]) DeleteOne(ctx context.Context, f store.Filter) error {
	const query = `DELETE FROM documents WHERE collection = $1 AND doc_key = $2`

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	key, _, err := c.locate(ctx, tx, f, true)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, c.name, key); err != nil {
		c.log.Error("failed to delete document", "key", key, "error", err)
		return fmt.Errorf("delete %s: %w", c.name, err)
	}
	return tx.Commit(ctx)
}

func (c *Collection[T]) locate(ctx context.Context, q querier, f store.Filter, lock bool) (string, T, error) {
	var zero T

	query := `SELECT doc_key, body FROM documents WHERE collection = $1`
	args := []any{c.name}
	if key, ok := f.KeyLookup(c.keyField); ok {
		query += ` AND doc_key = $2`
		args = append(args, key)
	}
	query += ` ORDER BY seq`
	if lock {
		query += ` FOR UPDATE`
	}

	rows, err := q.Query(ctx, query, args...)
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

func (c *Collection[T]) scan(rows pgx.Rows) (string, T, error) {
	var (
		key  string
		body []byte
		doc  T
	)
	if err := rows.Scan(&key, &body); err != nil {
		return "", doc, fmt.Errorf("scan %s: %w", c.name, err)
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", doc, fmt.Errorf("decode %s document %s: %w", c.name, key, err)
	}
	return key, doc, nil
}

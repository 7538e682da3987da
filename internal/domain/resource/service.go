// Package resource implements CRUD over a caller-keyed record collection.
// Books and recipes are two instances of the same Service.
package resource

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slog"

	"shelfkeeper/internal/domain/apperr"
	"shelfkeeper/internal/domain/schema"
	"shelfkeeper/internal/domain/store"
)

// IDField is the key member of every record payload.
const IDField = "id"

// Record is a document with a caller-assigned integer id.
type Record[T any] interface {
	store.Document
	RecordID() int
	WithRecordID(id int) T
}

// Kind describes one record collection.
type Kind struct {
	// Name is the singular, capitalised resource name used in messages ("Book").
	Name string
	// Fields is the full create payload, id included.
	Fields schema.FieldSet
}

type Servicer[T Record[T]] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, rawID string) (T, error)
	Create(ctx context.Context, payload []byte) (int, error)
	Update(ctx context.Context, rawID string, payload []byte) error
	Delete(ctx context.Context, rawID string) error
}

type Service[T Record[T]] struct {
	kind       Kind
	collection store.Collection[T]
	log        *slog.Logger
}

func NewService[T Record[T]](kind Kind, collection store.Collection[T], log *slog.Logger) *Service[T] {
	return &Service[T]{
		kind:       kind,
		collection: collection,
		log:        log.With("component", strings.ToLower(kind.Name)+"_service"),
	}
}

// ParseID coerces a path identifier to an integer. The whole segment must be
// a decimal integer: "1.0" and "12abc" are rejected rather than truncated.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperr.BadRequest(apperr.MsgNotANumber)
	}
	return id, nil
}

func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	items, err := s.collection.FindAll(ctx)
	if err != nil {
		s.log.Error("failed to list records", "error", err)
		return nil, fmt.Errorf("list %s: %w", s.kind.Name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *Service[T]) Get(ctx context.Context, rawID string) (T, error) {
	var zero T
	id, err := ParseID(rawID)
	if err != nil {
		return zero, err
	}

	item, err := s.collection.FindOne(ctx, store.Eq(IDField, id))
	if err != nil {
		return zero, s.translate(err, "get", id)
	}
	return item, nil
}

func (s *Service[T]) Create(ctx context.Context, payload []byte) (int, error) {
	item, err := schema.Decode[T](payload, s.kind.Fields)
	if err != nil {
		s.log.Debug("create payload rejected", "error", err)
		return 0, err
	}

	if _, err := s.collection.InsertOne(ctx, item); err != nil {
		return 0, s.translate(err, "create", item.RecordID())
	}

	s.log.Info("record created", "id", item.RecordID())
	return item.RecordID(), nil
}

func (s *Service[T]) Update(ctx context.Context, rawID string, payload []byte) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}

	item, err := schema.Decode[T](payload, s.kind.Fields.Without(IDField))
	if err != nil {
		s.log.Debug("update payload rejected", "id", id, "error", err)
		return err
	}
	item = item.WithRecordID(id)

	_, err = s.collection.UpdateOne(ctx, store.Eq(IDField, id), func(T) (T, error) {
		return item, nil
	})
	if err != nil {
		return s.translate(err, "update", id)
	}

	s.log.Info("record updated", "id", id)
	return nil
}

func (s *Service[T]) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}

	if err := s.collection.DeleteOne(ctx, store.Eq(IDField, id)); err != nil {
		return s.translate(err, "delete", id)
	}

	s.log.Info("record deleted", "id", id)
	return nil
}

func (s *Service[T]) translate(err error, op string, id int) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound(s.kind.Name + " not found")
	case errors.Is(err, store.ErrConflict):
		return apperr.Conflict(fmt.Sprintf("%s with id %d already exists", s.kind.Name, id))
	}
	s.log.Error("store failure", "op", op, "id", id, "error", err)
	return fmt.Errorf("%s %s %d: %w", op, strings.ToLower(s.kind.Name), id, err)
}

// Package resource exposes a resource.Service as the five CRUD routes under /api/<name>.
package resource

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"shelfkeeper/internal/app/server/api/http/apierror"
	"shelfkeeper/internal/domain/resource"
)

type Handler[T resource.Record[T]] struct {
	name       string
	base       string
	service    resource.Servicer[T]
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler serves service under /api/<name>, e.g. name "books".
func NewHandler[T resource.Record[T]](name string, service resource.Servicer[T], log *slog.Logger, mws huma.Middlewares) *Handler[T] {
	return &Handler[T]{
		name:       name,
		base:       "/api/" + name,
		service:    service,
		log:        log.With("handler", name),
		middleware: mws,
	}
}

func (h *Handler[T]) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler[T]) list(ctx context.Context, _ *struct{}) (*listOutput[T], error) {
	items, err := h.service.List(ctx)
	if err != nil {
		return nil, apierror.From(ctx, err)
	}
	return &listOutput[T]{Body: items}, nil
}

func (h *Handler[T]) find(ctx context.Context, input *findInput) (*findOutput[T], error) {
	item, err := h.service.Get(ctx, input.ID)
	if err != nil {
		return nil, apierror.From(ctx, err)
	}
	return &findOutput[T]{Body: item}, nil
}

func (h *Handler[T]) create(ctx context.Context, input *createInput) (*createOutput, error) {
	id, err := h.service.Create(ctx, input.RawBody)
	if err != nil {
		return nil, apierror.From(ctx, err)
	}
	return &createOutput{Body: CreatedResponse{ID: id}}, nil
}

func (h *Handler[T]) update(ctx context.Context, input *updateInput) (*noContentOutput, error) {
	if err := h.service.Update(ctx, input.ID, input.RawBody); err != nil {
		return nil, apierror.From(ctx, err)
	}
	return &noContentOutput{}, nil
}

func (h *Handler[T]) delete(ctx context.Context, input *findInput) (*noContentOutput, error) {
	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, apierror.From(ctx, err)
	}
	return &noContentOutput{}, nil
}

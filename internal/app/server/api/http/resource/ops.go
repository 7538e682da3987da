package resource

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler[T]) listOp() huma.Operation {
	return huma.Operation{
		OperationID: h.name + "-list",
		Method:      http.MethodGet,
		Path:        h.base,
		Summary:     "List all " + h.name,
		Tags:        []string{h.name},
		Middlewares: h.middleware,
	}
}

func (h *Handler[T]) findOp() huma.Operation {
	return huma.Operation{
		OperationID: h.name + "-find",
		Method:      http.MethodGet,
		Path:        h.base + "/{id}",
		Summary:     "Get one of the " + h.name + " by id",
		Tags:        []string{h.name},
		Middlewares: h.middleware,
	}
}

// Write operations take the raw body and leave validation to the schema
// guard, so huma must not check it against the []byte schema.
func (h *Handler[T]) createOp() huma.Operation {
	return huma.Operation{
		OperationID:      h.name + "-create",
		Method:           http.MethodPost,
		Path:             h.base,
		Summary:          "Add to " + h.name,
		Description:      "The body must hold the id and every field of the record, nothing else.",
		Tags:             []string{h.name},
		DefaultStatus:    http.StatusCreated,
		SkipValidateBody: true,
		Middlewares:      h.middleware,
	}
}

func (h *Handler[T]) updateOp() huma.Operation {
	return huma.Operation{
		OperationID:      h.name + "-update",
		Method:           http.MethodPut,
		Path:             h.base + "/{id}",
		Summary:          "Replace one of the " + h.name,
		Description:      "The body must hold every field of the record except the id.",
		Tags:             []string{h.name},
		DefaultStatus:    http.StatusNoContent,
		SkipValidateBody: true,
		Middlewares:      h.middleware,
	}
}

func (h *Handler[T]) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   h.name + "-delete",
		Method:        http.MethodDelete,
		Path:          h.base + "/{id}",
		Summary:       "Delete one of the " + h.name,
		Tags:          []string{h.name},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}

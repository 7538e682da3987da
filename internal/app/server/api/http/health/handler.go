package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"shelfkeeper/internal/app/server/api/http/apierror"
)

// Probe reports whether a dependency is reachable.
type Probe func(ctx context.Context) error

type Handler struct {
	probe      Probe
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(probe Probe, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		probe:      probe,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *statusInput) (*statusOutput, error) {
	h.log.Debug("health check request received")

	if h.probe == nil {
		return &statusOutput{Body: StatusResponse{Status: "OK", Storage: "skipped"}}, nil
	}

	if err := h.probe(ctx); err != nil {
		h.log.Warn("storage probe failed", "error", err)
		e := apierror.From(ctx, err)
		e.Status = http.StatusServiceUnavailable
		e.Message = http.StatusText(http.StatusServiceUnavailable)
		return nil, e
	}

	return &statusOutput{Body: StatusResponse{Status: "OK", Storage: "up"}}, nil
}

// Package requestid tags every request with an id, taken from the
// X-Request-Id header when the caller supplies one.
package requestid

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

const Header = "X-Request-Id"

type ctxKey struct{}

// Middleware stores the id in the request context and echoes it back.
func Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(Header)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		ctx.SetHeader(Header, id)
		next(huma.WithValue(ctx, ctxKey{}, id))
	}
}

// FromContext returns the request id, or "" outside a request.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

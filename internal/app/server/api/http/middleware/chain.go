package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Func is a single huma operation middleware.
type Func = func(ctx huma.Context, next func(huma.Context))

// Chain holds the middlewares every operation shares, outermost first.
type Chain struct {
	base huma.Middlewares
}

func NewChain(base ...Func) *Chain {
	return &Chain{base: append(huma.Middlewares{}, base...)}
}

// With returns the shared middlewares followed by extra. Every call gets its
// own slice, so handlers never see each other's additions.
func (c *Chain) With(extra ...Func) huma.Middlewares {
	out := make(huma.Middlewares, 0, len(c.base)+len(extra))
	out = append(out, c.base...)
	return append(out, extra...)
}
